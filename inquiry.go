package lumina

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultInquiryPhone is the boutique's WhatsApp number in international
// format without the leading '+'.
const DefaultInquiryPhone = "923202200100"

// InquiryMessage is the pre-filled text sent when asking about item.
func InquiryMessage(item Item) string {
	return fmt.Sprintf("Assalam o Alaikum, I am interested in inquiring about \"%s\" from your collection.", item.Title)
}

// InquiryURL builds the wa.me link that opens a chat with phone, pre-filled
// with InquiryMessage(item). Non-digits in phone are dropped.
func InquiryURL(phone string, item Item) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	// QueryEscape also escapes !'()*, which encodeURIComponent leaves alone;
	// the decoded text is identical.
	text := strings.ReplaceAll(url.QueryEscape(InquiryMessage(item)), "+", "%20")
	return "https://wa.me/" + digits + "?text=" + text
}
