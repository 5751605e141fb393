package domain

import (
	"encoding/json"
	"regexp"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
)

const (
	FieldResult  = "result"
	FieldEdition = "edition"
	FieldPlugins = "plugins"
	FieldError   = "error"
)

type ResponseKind int

const (
	ResponseMalformed ResponseKind = iota
	ResponseSuccess
	ResponseDeclined
	ResponseServerError
)

func (k ResponseKind) String() string {
	switch k {
	case ResponseSuccess:
		return "success"
	case ResponseDeclined:
		return "declined"
	case ResponseServerError:
		return "server_error"
	default:
		return "malformed"
	}
}

// ParsedResponse is the classification of one helper reply. Payload is set for
// ResponseSuccess, Message for ResponseServerError. Raw always holds the input.
// Structured reports whether the reply was a well-formed JSON object once
// comments and trailing commas are stripped; it never affects Kind.
type ParsedResponse struct {
	Kind       ResponseKind
	Payload    string
	Message    string
	Raw        string
	Structured bool
}

var (
	resultPattern = regexp.MustCompile(`"result"\s*:\s*"?(true|false)\b`)
	errorPattern  = regexp.MustCompile(`"error"\s*:\s*"([^"]+)"`)

	fieldPatterns sync.Map // field name -> *regexp.Regexp
)

// Classify sorts a raw helper reply into success, declined, server error or
// malformed. field names the payload to extract on success. The reply is not
// trusted to be JSON, so the outcome comes from a tolerant text scan alone:
// payloads are the exact quoted text and only literal \n pairs in server
// messages are turned into newlines. Anything unrecognised comes back as
// ResponseMalformed with Raw untouched.
func Classify(raw, field string) ParsedResponse {
	parsed := classifyText(raw, field)
	parsed.Structured = isStructured(raw)
	return parsed
}

func classifyText(raw, field string) ParsedResponse {
	if results := resultPattern.FindAllStringSubmatch(raw, -1); results != nil {
		// Any "result": false declines, whatever else the reply carries.
		for _, match := range results {
			if match[1] == "false" {
				return ParsedResponse{Kind: ResponseDeclined, Raw: raw}
			}
		}
		payload := ""
		if value := fieldPattern(field).FindStringSubmatch(raw); value != nil {
			payload = value[1] + value[2]
		}
		return ParsedResponse{Kind: ResponseSuccess, Payload: payload, Raw: raw}
	}
	if match := errorPattern.FindStringSubmatch(raw); match != nil {
		return ParsedResponse{Kind: ResponseServerError, Message: unescapeNewlines(match[1]), Raw: raw}
	}
	return ParsedResponse{Kind: ResponseMalformed, Raw: raw}
}

func isStructured(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	var doc map[string]json.RawMessage
	return json.Unmarshal(jsonc.ToJSON([]byte(trimmed)), &doc) == nil
}

// fieldPattern matches "name": "quoted value" or "name": bare-value.
func fieldPattern(name string) *regexp.Regexp {
	if cached, ok := fieldPatterns.Load(name); ok {
		return cached.(*regexp.Regexp)
	}
	pattern := regexp.MustCompile(`"` + regexp.QuoteMeta(name) + `"\s*:\s*(?:"([^"]*)"|([^\s,{}\[\]"]+))`)
	actual, _ := fieldPatterns.LoadOrStore(name, pattern)
	return actual.(*regexp.Regexp)
}

func unescapeNewlines(value string) string {
	return strings.ReplaceAll(value, `\n`, "\n")
}
