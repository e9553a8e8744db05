package client

import (
	"regexp"
	"strconv"
	"strings"

	"redpacket/program"
)

// customErrorPattern matches the "custom program error: 0x..." shape an RPC
// simulation failure embeds.
var customErrorPattern = regexp.MustCompile(`custom program error: 0x([0-9a-fA-F]+)`)

// DescribeProgramError turns a simulated or on-chain transaction failure
// into a human-readable description, looking the numeric code up against
// the program's closed error taxonomy instead of a flat string table.
func DescribeProgramError(err error) string {
	if err == nil {
		return ""
	}

	if pe, ok := err.(program.Err); ok {
		return pe.Error()
	}

	errStr := err.Error()
	if matches := customErrorPattern.FindStringSubmatch(errStr); len(matches) > 1 {
		code, convErr := strconv.ParseInt(matches[1], 16, 64)
		if convErr == nil {
			if pe, ok := program.LookupErr(uint32(code)); ok {
				return pe.Error()
			}
		}
	}

	if strings.Contains(errStr, "BlockhashNotFound") {
		return "transaction expired: blockhash no longer valid, rebuild and resend"
	}

	if len(errStr) > 300 {
		return errStr[:300] + "..."
	}
	return errStr
}
