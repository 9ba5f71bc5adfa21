package donation

import (
	"math"
	"strings"
)

var onesWords = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tensWords = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	s := tensWords[n/10]
	if n%10 > 0 {
		s += " " + onesWords[n%10]
	}
	return s
}

// AmountInWords renders a rupee amount in the Indian numbering system
// (crore / lakh / thousand) for printed receipts.
func AmountInWords(amount float64) string {
	n := int64(math.Round(amount))
	if n <= 0 {
		return "Zero Rupees Only"
	}

	var parts []string
	if crore := n / 10000000; crore > 0 {
		parts = append(parts, twoDigitWords(crore), "Crore")
	}
	if lakh := (n / 100000) % 100; lakh > 0 {
		parts = append(parts, twoDigitWords(lakh), "Lakh")
	}
	if thousand := (n / 1000) % 100; thousand > 0 {
		parts = append(parts, twoDigitWords(thousand), "Thousand")
	}
	if hundred := (n / 100) % 10; hundred > 0 {
		parts = append(parts, onesWords[hundred], "Hundred")
	}
	if rest := n % 100; rest > 0 {
		parts = append(parts, twoDigitWords(rest))
	}

	return strings.Join(parts, " ") + " Rupees Only"
}
