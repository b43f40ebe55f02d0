package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUniqueAssetName_Format(t *testing.T) {
	ts := time.Date(2024, 3, 5, 12, 30, 45, 123456789, time.UTC)
	assert.Equal(t, "chronica_Sunset_2024-03-05_12-30-45", UniqueAssetName("Sunset", ts))
}

func TestUniqueAssetName_TruncatesToSecond(t *testing.T) {
	base := time.Date(2024, 3, 5, 12, 30, 45, 0, time.UTC)
	withNanos := base.Add(900 * time.Millisecond)
	assert.Equal(t, UniqueAssetName("Sunset", base), UniqueAssetName("Sunset", withNanos))
}

func TestUniqueAssetName_DistinctAcrossSeconds(t *testing.T) {
	t1 := time.Date(2024, 3, 5, 12, 30, 45, 0, time.UTC)
	t2 := t1.Add(time.Second)
	assert.NotEqual(t, UniqueAssetName("Sunset", t1), UniqueAssetName("Sunset", t2))
}

func TestUniqueAssetName_ZeroTimeDefaultsToNow(t *testing.T) {
	name := UniqueAssetName("Sunset", time.Time{})
	assert.Contains(t, name, "chronica_Sunset_")
	assert.NotContains(t, name, "0001-01-01")
}

func TestMintingTimestamp_ConvertsToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2024, 3, 5, 14, 30, 45, 0, zone)
	assert.Equal(t, "2024-03-05_12-30-45", MintingTimestamp(local))
}
