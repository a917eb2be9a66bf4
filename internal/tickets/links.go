package tickets

import (
	"net/url"
	"strconv"
	"strings"
)

const qrServiceURL = "https://api.qrserver.com/v1/create-qr-code/?size=160x160&data="

// VerificationURL is the link encoded in a ticket's QR code.
func VerificationURL(origin string, tokenID, eventID uint64) string {
	return strings.TrimRight(origin, "/") + "/verify?tokenId=" + strconv.FormatUint(tokenID, 10) +
		"&eventId=" + strconv.FormatUint(eventID, 10)
}

// QRCodeURL renders link as a 160x160 QR image URL.
func QRCodeURL(link string) string {
	return qrServiceURL + url.QueryEscape(link)
}
