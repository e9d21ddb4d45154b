package wsapme

import "strings"

const jidSuffix = "@s.whatsapp.net"

var phoneReplacer = strings.NewReplacer("+", "", " ", "", "-", "")

// NormalizePhone strips the formatting people usually type into a number.
func NormalizePhone(phone string) string {
	return phoneReplacer.Replace(strings.TrimSpace(phone))
}

// FormatJID turns a phone number into a WhatsApp user JID. Values that
// already carry a JID suffix are returned unchanged.
func FormatJID(phone string) string {
	if strings.Contains(phone, "@") {
		return phone
	}
	return NormalizePhone(phone) + jidSuffix
}
