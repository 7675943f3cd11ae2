package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_TolerantUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"number", `1000`, "1000"},
		{"decimal", `1000.50`, "1000.5"},
		{"quoted number", `"500"`, "500"},
		{"null", `null`, "0"},
		{"empty string", `""`, "0"},
		{"garbage", `"abc"`, "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tc.in), &a))
			assert.Equal(t, tc.want, a.String())
		})
	}
}

func TestFeePreviewResponse_ArrayShape(t *testing.T) {
	raw := `[
		{"month":"April","fees":[{"fee_id":"f1","fee_type":"Tuition Fee","original_amount":"1000"}]},
		{"month":"May","fees":[]}
	]`

	var r FeePreviewResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	require.Len(t, r, 2)
	assert.Equal(t, "April", r[0].Month)
	assert.Equal(t, "1000", r[0].Fees[0].OriginalAmount.String())
}

// Varian endpoint per-student kadang mengirim satu object, bukan array.
func TestFeePreviewResponse_SingleObjectWrapped(t *testing.T) {
	raw := `{"month":"April","fees":[{"fee_id":"f1","fee_type":"Tuition Fee","original_amount":200}]}`

	var r FeePreviewResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	require.Len(t, r, 1)
	assert.Equal(t, "April", r[0].Month)
}

func TestFeePreviewResponse_Null(t *testing.T) {
	var r FeePreviewResponse
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.Nil(t, r)
}
