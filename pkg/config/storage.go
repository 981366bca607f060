package config

import "fmt"

// StorageConfig configures the JSON file store backing the product table.
type StorageConfig struct {
	// Path is the location of the data file. The directory is created on
	// startup if it does not exist.
	Path string `koanf:"path"`
	// LowStockThreshold is the stock level below which a product counts as
	// low-stock in the statistics report.
	LowStockThreshold int `koanf:"lowStockThreshold"`
}

func (c *StorageConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("storage path is not configured")
	}
	if c.LowStockThreshold <= 0 {
		return fmt.Errorf("invalid low stock threshold: %d", c.LowStockThreshold)
	}
	return nil
}
