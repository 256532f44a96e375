package main

import (
	"fmt"
	"os"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero/wallet"
	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
)

func toUint32(values []uint) []uint32 {
	if len(values) == 0 {
		return nil
	}
	out := make([]uint32, 0, len(values))
	for _, v := range values {
		out = append(out, uint32(v))
	}
	return out
}

func parseHashes(values []string) ([]types.Hash, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("at least one transaction id is required")
	}
	ids := make([]types.Hash, 0, len(values))
	for _, s := range values {
		id, err := types.HashFromString(s)
		if err != nil {
			return nil, fmt.Errorf("txid %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readKeyImages(path string) ([]wallet.KeyImage, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var images []wallet.KeyImage
	if err = utils.UnmarshalJSON(buf, &images); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return images, nil
}
