package internal

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GetLocalePrinter returns a localized message printer
func GetLocalePrinter() *message.Printer {
	return message.NewPrinter(getUserLocale())
}

// PrettyPrintInt returns a localized string representation of the input integer
func PrettyPrintInt(input int64) string {
	return GetLocalePrinter().Sprintf("%d", input)
}

// PrettyPrintOffset renders a file offset as fixed width hex followed by the localized decimal value
func PrettyPrintOffset(offset int) string {
	return fmt.Sprintf("0x%08x (%s)", offset, PrettyPrintInt(int64(offset)))
}

// PrettyPrintBytes returns a localized string representation of the input byte count
func PrettyPrintBytes(bytes uint64) string {
	const unit = 1024

	suffix := ""
	div := int64(1)

	if bytes >= unit {
		var exp int

		div, exp = int64(unit), 0

		for n := bytes / unit; n >= unit; n /= unit {
			div *= unit
			exp++
		}

		const suffixes = "kMGTPE"

		if exp >= len(suffixes) {
			// More than exabytes, really?
			suffix = "OMFGz"
		} else {
			suffix = string(suffixes[exp])
		}
	}

	return GetLocalePrinter().Sprintf("%.1f %sB", float64(bytes)/float64(div), suffix)
}

func getUserLocale() language.Tag {
	// Get the preferred locale from the environment variables
	locale := os.Getenv("LC_ALL")

	if locale == "" {
		locale = os.Getenv("LC_MESSAGES")
	}

	if locale == "" {
		locale = os.Getenv("LANG")
	}

	return parseLocale(locale)
}

// parseLocale turns POSIX locale names like en_US.UTF-8 or de_DE@euro into a language tag
func parseLocale(locale string) language.Tag {
	if index := strings.IndexAny(locale, ".@"); index >= 0 {
		locale = locale[:index]
	}

	locale = strings.ReplaceAll(locale, "_", "-")

	if locale == "" || locale == "C" || locale == "POSIX" {
		return language.AmericanEnglish
	}

	tag, err := language.Parse(locale)

	if err != nil {
		// Fallback to default language if parsing failed
		return language.English
	}

	return tag
}
