// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tsasn1/internal/version"
	"github.com/pdiddy/tsasn1/pkg/types"
)

var sample36411 = []string{
	"05-03-07  01:31PM                31300 36411-001.zip",
	"06-19-07  01:56PM                30645 36411-002.zip",
	"09-24-07  11:09AM                30028 36411-100.zip",
	"12-11-07  08:02AM                28224 36411-200.zip",
	"12-12-07  10:42AM                28971 36411-800.zip",
	"12-16-08  08:28PM               145149 36411-810.zip",
	"12-17-09  08:15PM               144027 36411-900.zip",
	"12-21-10  01:15PM               158286 36411-a00.zip",
	"06-24-11  02:14PM               157453 36411-a10.zip",
	"09-22-12  04:35PM               157488 36411-b00.zip",
	"09-19-14  08:46PM               160317 36411-c00.zip",
	"12-22-15  11:31PM                33725 36411-d00.zip",
	"03-24-17  11:29PM                34582 36411-e00.zip",
	"06-22-18  05:24AM                34731 36411-f00.zip",
}

func TestParse_Sample(t *testing.T) {
	got, err := Parse(sample36411)
	require.NoError(t, err)

	want := types.VersionMap{
		"0.0.1":  {Token: "001", Date: "05-03-07"},
		"0.0.2":  {Token: "002", Date: "06-19-07"},
		"1.0.0":  {Token: "100", Date: "09-24-07"},
		"2.0.0":  {Token: "200", Date: "12-11-07"},
		"8.0.0":  {Token: "800", Date: "12-12-07"},
		"8.1.0":  {Token: "810", Date: "12-16-08"},
		"9.0.0":  {Token: "900", Date: "12-17-09"},
		"10.0.0": {Token: "a00", Date: "12-21-10"},
		"10.1.0": {Token: "a10", Date: "06-24-11"},
		"11.0.0": {Token: "b00", Date: "09-22-12"},
		"12.0.0": {Token: "c00", Date: "09-19-14"},
		"13.0.0": {Token: "d00", Date: "12-22-15"},
		"14.0.0": {Token: "e00", Date: "03-24-17"},
		"15.0.0": {Token: "f00", Date: "06-22-18"},
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, 14)
}

func TestParse_LastLineWins(t *testing.T) {
	lines := []string{
		"05-03-07  01:31PM                31300 36411-f00.zip",
		"06-22-18  05:24AM                34731 36411-f00.zip",
	}
	got, err := Parse(lines)
	require.NoError(t, err)
	assert.Equal(t, types.VersionMap{"15.0.0": {Token: "f00", Date: "06-22-18"}}, got)
}

func TestParse_BlankLinesIgnored(t *testing.T) {
	lines := append([]string{""}, sample36411[:2]...)
	lines = append(lines, "   ")
	got, err := Parse(lines)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantErr error
	}{
		{"too short", "05-03-07", ErrMalformedListingLine},
		{"bad token char", "05-03-07  01:31PM  31300 36411-#00.zip", version.ErrInvalidTokenCharacter},
		{"uppercase token", "05-03-07  01:31PM  31300 36411-F00.zip", ErrMalformedListingLine},
		{"directory entry", "05-03-07  01:31PM       <DIR>          Archive", ErrMalformedListingLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := []string{sample36411[0], tt.line}
			got, err := Parse(lines)
			assert.Nil(t, got)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestLatest(t *testing.T) {
	m, err := Parse(sample36411)
	require.NoError(t, err)

	v, rel, ok := Latest(m)
	require.True(t, ok)
	assert.Equal(t, "15.0.0", v)
	assert.Equal(t, "f00", rel.Token)

	_, _, ok = Latest(types.VersionMap{})
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	m := types.VersionMap{
		"10.0.0": {Token: "a00", Date: "12-21-10"},
		"9.0.0":  {Token: "900", Date: "12-17-09"},
	}
	assert.Equal(t, "9.0.0\t12-17-09\n10.0.0\t12-21-10\n", Format(m))
}
