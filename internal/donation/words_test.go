package donation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountInWords(t *testing.T) {
	cases := []struct {
		amount float64
		want   string
	}{
		{0, "Zero Rupees Only"},
		{1, "One Rupees Only"},
		{19, "Nineteen Rupees Only"},
		{40, "Forty Rupees Only"},
		{99, "Ninety Nine Rupees Only"},
		{100, "One Hundred Rupees Only"},
		{820, "Eight Hundred Twenty Rupees Only"},
		{1000, "One Thousand Rupees Only"},
		{1101, "One Thousand One Hundred One Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{1234567, "Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven Rupees Only"},
		{10000000, "One Crore Rupees Only"},
		{23456789, "Two Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Rupees Only"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, AmountInWords(tc.amount), "amount %v", tc.amount)
	}
}

func TestAmountInWordsRoundsToWholeRupees(t *testing.T) {
	require.Equal(t, "Twenty One Rupees Only", AmountInWords(20.75))
	require.Equal(t, "Twenty Rupees Only", AmountInWords(20.25))
}
