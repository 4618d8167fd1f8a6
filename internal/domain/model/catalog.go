package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"premium-store/internal/domain"
)

// ProviderRecord is one entry of the providers.json document.
type ProviderRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Domain      string  `json:"domain"`
	Logo        string  `json:"logo"`
	Description string  `json:"description,omitempty"`
	Base        float64 `json:"base"`
	Only12      bool    `json:"only12,omitempty"`
}

type providersEnvelope struct {
	Providers []ProviderRecord `json:"providers"`
}

// DecodeCatalog parses a catalog document. Both a bare array of records and
// an object with a "providers" array are accepted. An empty catalog yields
// domain.ErrEmptyCatalog.
func DecodeCatalog(data []byte) ([]*Plan, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	var records []ProviderRecord
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
	case '{':
		var env providersEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		records = env.Providers
	default:
		return nil, fmt.Errorf("parse catalog: unexpected token %q", trimmed[0])
	}

	return PlansFromRecords(records)
}

// PlansFromRecords converts raw provider records into plans, keeping order.
func PlansFromRecords(records []ProviderRecord) ([]*Plan, error) {
	if len(records) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	plans := make([]*Plan, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		p, err := NewPlan(r.ID, r.Name, r.Domain, r.Logo, r.Description, r.Base, r.Only12)
		if err != nil {
			return nil, fmt.Errorf("provider #%d (%q): %w", i, r.ID, err)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("provider #%d: duplicate id %q: %w", i, p.ID, domain.ErrInvalidArgument)
		}
		seen[p.ID] = struct{}{}
		plans = append(plans, p)
	}
	return plans, nil
}

// EncodeCatalog renders plans back into the bare-array document form.
func EncodeCatalog(plans []*Plan) ([]byte, error) {
	records := make([]ProviderRecord, 0, len(plans))
	for _, p := range plans {
		records = append(records, ProviderRecord{
			ID:          p.ID,
			Name:        p.Name,
			Domain:      p.DomainLabel,
			Logo:        p.LogoURL,
			Description: p.Description,
			Base:        p.BasePrice,
			Only12:      p.Restricted(),
		})
	}
	return json.Marshal(records)
}
