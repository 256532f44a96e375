package wallet

import (
	"context"

	"git.gammaspectra.live/P2Pool/wallet-rpc/types"
)

type KeyImage struct {
	KeyImage  types.Hash  `json:"key_image"`
	Signature types.Bytes `json:"signature"`
}

type KeyImageImportResult struct {
	Height        uint64 `json:"height"`
	SpentAmount   uint64 `json:"spent"`
	UnspentAmount uint64 `json:"unspent"`
}

// ExportKeyImages returns signed key images of the wallet outputs, only the ones not yet exported unless all is set
func (w *Wallet) ExportKeyImages(ctx context.Context, all bool) ([]KeyImage, error) {
	var result struct {
		Offset          uint64     `json:"offset"`
		SignedKeyImages []KeyImage `json:"signed_key_images"`
	}
	if err := w.call(ctx, "export_key_images", map[string]any{"all": all}, &result); err != nil {
		return nil, err
	}
	if result.SignedKeyImages == nil {
		return []KeyImage{}, nil
	}
	return result.SignedKeyImages, nil
}

func (w *Wallet) ImportKeyImages(ctx context.Context, keyImages []KeyImage) (*KeyImageImportResult, error) {
	if len(keyImages) == 0 {
		return nil, invalidConfig("no key images to import")
	}
	var result KeyImageImportResult
	if err := w.call(ctx, "import_key_images", map[string]any{"signed_key_images": keyImages}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
