package address

import (
	"git.gammaspectra.live/P2Pool/wallet-rpc/utils"
)

// Cache remembers decoded addresses, destinations tend to repeat across sends
type Cache struct {
	addresses utils.Cache[string, *Address]
}

func NewCache(size int) *Cache {
	return &Cache{
		addresses: utils.NewLRUCache[string, *Address](size),
	}
}

// Decode returns the cached address or decodes and stores it. Failures are not cached.
func (c *Cache) Decode(address string) (*Address, error) {
	if a, ok := c.addresses.Get(address); ok {
		return a, nil
	}
	a, err := Decode(address)
	if err != nil {
		return nil, err
	}
	c.addresses.Set(address, a)
	return a, nil
}

func (c *Cache) Len() int {
	return c.addresses.Len()
}
