package sequence

import "errors"

// Sentinel errors for the sequence service layer.
var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrCampaignNotFound = errors.New("campaign not found")
)
