package metadata

import (
	"time"

	"github.com/chronica/backend/pkg/apperrors"
)

const (
	// cip25VersionTag is the top-level key of every CIP-25 document.
	cip25VersionTag = "721"

	defaultAuthorityType = "Media"
	defaultCulture       = "EN-US"
	defaultMediaType     = "image/png"
	noDescriptionEntry   = "No description provided"
)

// Submission carries the user-supplied fields of one NFT creation request.
type Submission struct {
	Title          string
	Description    string
	MimeType       string
	EventTimestamp string
	GeoLocation    string
	Tags           []string
	Culture        string
}

// NFTRecord is the per-asset leaf of a CIP-25 document.
type NFTRecord struct {
	Title            ChunkedField  `json:"title"`
	MintingTimestamp string        `json:"minting_timestamp"`
	EventTimestamp   string        `json:"event_timestamp,omitempty"`
	GeoLocation      *ChunkedField `json:"geo_location,omitempty"`
	Entries          []string      `json:"entries"`
	Image            ChunkedField  `json:"image"`
	MediaType        string        `json:"media_type"`
	AuthorityType    string        `json:"authority_type"`
	Tags             []string      `json:"tags"`
	Culture          string        `json:"culture"`
}

// Cip25Document nests the record under version tag, policy id and asset name.
type Cip25Document map[string]map[string]map[string]NFTRecord

// BuildCip25 assembles the on-chain metadata document for one submission.
// ipfsHash must be the hash of the post-overlay upload, never the original
// file's. The asset name is derived from the title and now, so callers that
// computed the name earlier with the same timestamp get an identical key.
func BuildCip25(sub Submission, ipfsHash, policyID string, now time.Time) (Cip25Document, error) {
	if policyID == "" {
		return nil, &apperrors.ConfigurationError{Message: "policy id is not configured"}
	}
	if now.IsZero() {
		now = time.Now()
	}

	description := sub.Description
	if description == "" {
		description = noDescriptionEntry
	}

	mediaType := sub.MimeType
	if mediaType == "" {
		mediaType = defaultMediaType
	}

	culture := sub.Culture
	if culture == "" {
		culture = defaultCulture
	}

	tags := sub.Tags
	if tags == nil {
		tags = []string{}
	}

	record := NFTRecord{
		Title:            Chunk(sub.Title),
		MintingTimestamp: MintingTimestamp(now),
		EventTimestamp:   sub.EventTimestamp,
		Entries:          Chunk(description).Parts(),
		Image:            Chunk(ipfsHash),
		MediaType:        mediaType,
		AuthorityType:    defaultAuthorityType,
		Tags:             tags,
		Culture:          culture,
	}
	if sub.GeoLocation != "" {
		geo := Chunk(sub.GeoLocation)
		record.GeoLocation = &geo
	}

	assetName := UniqueAssetName(sub.Title, now)
	return Cip25Document{
		cip25VersionTag: {
			policyID: {
				assetName: record,
			},
		},
	}, nil
}
