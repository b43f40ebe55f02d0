package fingerprint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference vectors from the published CIP-14 specification, plus a known
// mainnet asset as an independent cross-check.
func TestNew_ReferenceVectors(t *testing.T) {
	tests := []struct {
		name      string
		policyID  string
		assetName string
		want      string
	}{
		{
			name:      "empty asset name",
			policyID:  "7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc373",
			assetName: "",
			want:      "asset1rjklcrnsdzqp65wjgrg55sy9723kw09mlgvlc3",
		},
		{
			name:      "empty asset name, second policy",
			policyID:  "7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc37e",
			assetName: "",
			want:      "asset1nl0puwxmhas8fawxp8nx4e2q3wekg969n2auw3",
		},
		{
			name:      "empty asset name, third policy",
			policyID:  "1e349c9bdea19fd6c147626a5260bc44b71635f398b67c59881df209",
			assetName: "",
			want:      "asset1uyuxku60yqe57nusqzjx38aan3f2wq6s93f6ea",
		},
		{
			name:      "PATATE",
			policyID:  "7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc373",
			assetName: "PATATE",
			want:      "asset13n25uv0yaf5kus35fm2k86cqy60z58d9xmde92",
		},
		{
			name:      "mainnet HOSKY",
			policyID:  "a0028f350aaabe0545fdcb56b039bfb08e4bb4d8c4d7c3c7d481c235",
			assetName: "HOSKY",
			want:      "asset17q7r59zlc3dgw0venc80pdv566q6yguw03f0d9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.policyID, tt.assetName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Deterministic(t *testing.T) {
	policyID := "7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc373"
	first, err := New(policyID, "chronica_Sunset_2024-03-05_12-30-45")
	require.NoError(t, err)
	second, err := New(policyID, "chronica_Sunset_2024-03-05_12-30-45")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := New(policyID, "chronica_Sunset_2024-03-05_12-30-46")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestNew_PrefixAndShape(t *testing.T) {
	fp, err := New("7eae28af2208be856f7a119668ae52a49b73725e326dc16579dcc373", "anything")
	require.NoError(t, err)
	assert.True(t, len(fp) > len("asset1"))
	assert.Equal(t, "asset1", fp[:6])
}

func TestNew_InvalidPolicyID(t *testing.T) {
	_, err := New("not-hex!", "name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPolicyID))
}

func TestExplorerURLs(t *testing.T) {
	fp := "asset1rjklcrnsdzqp65wjgrg55sy9723kw09mlgvlc3"
	urls := ExplorerURLs(fp)

	assert.Equal(t, fp, urls.Fingerprint)
	assert.Equal(t, "https://cardanoscan.io/token/"+fp, urls.Cardanoscan)
	assert.Equal(t, "https://preprod.cardanoscan.io/token/"+fp, urls.CardanoscanPreprod)
	assert.Equal(t, "https://pool.pm/"+fp, urls.PoolPM)
	assert.Equal(t, "https://cnft.io/token/"+fp, urls.CNFT)
	// cardanoassets strips the hrp before substitution, so the path segment
	// starts with the literal "asset" followed by the data part.
	assert.Equal(t, "https://cardanoassets.com/"+fp, urls.CardanoAssets)
}
