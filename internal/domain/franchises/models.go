package franchises

import "fmt"

// Franchise is the canonical identity of a club across relocations and renames.
type Franchise struct {
	Code        string   `json:"code" yaml:"code" validate:"required"`
	Name        string   `json:"name" yaml:"name" validate:"required"`
	ShortName   string   `json:"shortName" yaml:"short_name" validate:"required"`
	Hashtag     string   `json:"hashtag,omitempty" yaml:"hashtag" validate:"omitempty,startswith=#"`
	ProviderIDs []int    `json:"providerIds" yaml:"provider_ids" validate:"required,min=1,dive,gt=0"`
	Lineage     []string `json:"lineage" yaml:"lineage" validate:"required,min=1,dive,required"`
	Known       bool     `json:"known" yaml:"-"`
}

// Fallback builds the identity used when a provider team has no mapping on record.
// It carries no lineage, so history lookups cannot be made for it.
func Fallback(providerID int, displayName string) Franchise {
	name := displayName
	if name == "" {
		name = fmt.Sprintf("Team %d", providerID)
	}
	return Franchise{
		Code:        fmt.Sprintf("ID%d", providerID),
		Name:        name,
		ShortName:   name,
		ProviderIDs: []int{providerID},
	}
}

// DisplayShort returns the short name, falling back to the full name.
func (f Franchise) DisplayShort() string {
	if f.ShortName != "" {
		return f.ShortName
	}
	return f.Name
}
