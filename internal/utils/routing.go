package utils

// ValidateRoutingNumber checks an ABA routing number using the weighted
// checksum algorithm: digits are weighted 3-7-1 by position and the total
// must be divisible by 10. Fails closed on anything that is not exactly
// nine ASCII digits.
func ValidateRoutingNumber(routingNumber string) bool {
	if len(routingNumber) != 9 {
		return false
	}
	var d [9]int
	for i := 0; i < 9; i++ {
		c := routingNumber[i]
		if c < '0' || c > '9' {
			return false
		}
		d[i] = int(c - '0')
	}
	checksum := (3*(d[0]+d[3]+d[6]) + 7*(d[1]+d[4]+d[7]) + (d[2] + d[5] + d[8])) % 10
	return checksum == 0
}
