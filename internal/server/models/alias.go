package models

// ContactAlias is a display name chosen by OwnerID for TargetID. Aliases are
// partitioned by owner and never imply that TargetID is a known Party.
type ContactAlias struct {
	OwnerID  string
	TargetID string
	Name     string
}
