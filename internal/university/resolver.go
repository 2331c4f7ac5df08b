// Package university derives the tenancy code that partitions all
// visibility and matching. The code is computed once from the signup
// email domain and never changes afterwards.
package university

import (
	"errors"
	"strings"
)

var ErrInvalidDomain = errors.New("email domain is not a recognized .edu address")

// maxCodeLen caps codes derived from unknown domains.
const maxCodeLen = 10

// aliases maps known university domains, including historical and
// alternate spellings, to their canonical short code.
var aliases = map[string]string{
	"vt.edu":                   "vt",
	"vtu.edu":                  "vt",
	"mail.vt.edu":              "vt",
	"virginiatech.edu":         "vt",
	"gmu.edu":                  "gmu",
	"georgemason.edu":          "gmu",
	"nvcc.edu":                 "nvcc",
	"nova.edu":                 "nvcc",
	"northernvirginia.edu":     "nvcc",
	"uva.edu":                  "uva",
	"virginia.edu":             "uva",
	"jmu.edu":                  "jmu",
	"jamesmadison.edu":         "jmu",
	"vcu.edu":                  "vcu",
	"virginiacommonwealth.edu": "vcu",
	"wlu.edu":                  "wlu",
	"washingtonandlee.edu":     "wlu",
}

// genericPrefixes carry no institutional meaning and are stripped from
// derived codes.
var genericPrefixes = []string{"www", "mail", "web"}

// Resolve maps an email address to its tenancy code. The domain must
// end in .edu and have at least two labels; unknown domains fall back
// to the second-to-last label, lowercased and truncated.
func Resolve(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", ErrInvalidDomain
	}
	domain := email[at+1:]

	if !strings.HasSuffix(domain, ".edu") {
		return "", ErrInvalidDomain
	}

	if code, ok := aliases[domain]; ok {
		return code, nil
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 || labels[len(labels)-1] != "edu" {
		return "", ErrInvalidDomain
	}

	code := labels[len(labels)-2]
	for _, p := range genericPrefixes {
		if strings.HasPrefix(code, p) {
			code = strings.TrimPrefix(code, p)
			break
		}
	}
	if code == "" {
		// "mail.edu"-style domains have nothing left to derive from.
		return "", ErrInvalidDomain
	}
	if len(code) > maxCodeLen {
		code = code[:maxCodeLen]
	}
	return code, nil
}
