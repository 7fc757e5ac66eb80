package launchpad

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// TokenMetadata is the off-chain document a launch's URI points at.
type TokenMetadata struct {
	Name        string
	Symbol      string
	Description string
	Image       string
}

// ParseTokenMetadata extracts the standard fields from an off-chain metadata
// JSON document and validates them against the same bounds CreateLaunch
// enforces on-record.
func ParseTokenMetadata(doc []byte) (*TokenMetadata, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid metadata document")
	}

	name := gjson.GetBytes(doc, "name")
	symbol := gjson.GetBytes(doc, "symbol")
	if !name.Exists() || name.String() == "" {
		return nil, fmt.Errorf("metadata missing name")
	}
	if !symbol.Exists() || symbol.String() == "" {
		return nil, fmt.Errorf("metadata missing symbol")
	}
	if len(name.String()) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if len(symbol.String()) > MaxSymbolLen {
		return nil, ErrSymbolTooLong
	}

	return &TokenMetadata{
		Name:        name.String(),
		Symbol:      symbol.String(),
		Description: gjson.GetBytes(doc, "description").String(),
		Image:       gjson.GetBytes(doc, "image").String(),
	}, nil
}
