package jcl

import (
	"errors"
	"regexp"
	"strings"

	"github.com/huangsam/mfscan/schema"
)

// Reasons a complete DD statement produces no declaration.
var (
	ErrTooFewTokens  = errors.New("dd statement has fewer than two tokens")
	ErrNoDDKeyword   = errors.New("dd keyword not found")
	ErrNoDatasetInfo = errors.New("dd statement names no dataset, disposition or special type")
)

// InlineDDName is used when a statement starts with the DD keyword itself.
const InlineDDName = "INLINE"

// Nested groups like SPACE=(CYL,(10,5)) allow one level of inner parentheses.
const nestedGroup = `\(((?:[^()]|\([^()]*\))*)\)`

// paramRule extracts one field. Patterns are tried in order and the first match wins.
type paramRule struct {
	name     string
	patterns []*regexp.Regexp
	set      func(d *schema.DatasetDeclaration, value string)
}

// paramRules run in order once per statement; later rules may overwrite
// fields set by earlier ones (SYSOUT replaces UNIT).
var paramRules = []paramRule{
	{
		name: "dsn",
		patterns: compileAll(
			`DSN=([^,\s]+)`,
			`DSN='([^']+)'`,
			`DSN="([^"]+)"`,
			`DSN=\(([^)]+)\)`,
		),
		set: func(d *schema.DatasetDeclaration, v string) { d.DatasetName = trimQuotes(v) },
	},
	{
		name:     "disp",
		patterns: compileAll(`DISP=\(([^)]+)\)`, `DISP=([^,\s]+)`),
		set:      setDisposition,
	},
	{
		name:     "volume",
		patterns: compileAll(`VOL=([^,\s]+)`, `VOLUME=([^,\s]+)`, `VOL=\(([^)]+)\)`),
		set:      func(d *schema.DatasetDeclaration, v string) { d.Volume = trimQuotes(v) },
	},
	{
		name:     "unit",
		patterns: compileAll(`UNIT=([^,\s]+)`, `UNIT=\(([^)]+)\)`),
		set:      func(d *schema.DatasetDeclaration, v string) { d.Unit = trimQuotes(v) },
	},
	{
		name:     "space",
		patterns: compileAll(`SPACE=` + nestedGroup),
		set:      func(d *schema.DatasetDeclaration, v string) { d.Space = trimQuotes(v) },
	},
	{
		name:     "dcb",
		patterns: compileAll(`DCB=` + nestedGroup),
		set:      func(d *schema.DatasetDeclaration, v string) { d.DCB = trimQuotes(v) },
	},
	{
		name:     "sysout",
		patterns: compileAll(`SYSOUT=([^,\s]+)`),
		set:      func(d *schema.DatasetDeclaration, v string) { d.Unit = "SYSOUT=" + v },
	},
}

// typeRule classifies a statement. Rules are checked in precedence order.
type typeRule struct {
	dt    schema.DatasetType
	match func(params string, d *schema.DatasetDeclaration) bool
}

var typeRules = []typeRule{
	{schema.DummyDataset, func(p string, _ *schema.DatasetDeclaration) bool { return dummyToken.MatchString(p) }},
	{schema.SysoutDataset, func(p string, _ *schema.DatasetDeclaration) bool { return strings.Contains(p, "SYSOUT=") }},
	{schema.SysinDataset, func(p string, d *schema.DatasetDeclaration) bool {
		return strings.Contains(p, "*") && d.DatasetName == ""
	}},
	{schema.TemporaryDataset, func(_ string, d *schema.DatasetDeclaration) bool { return strings.Contains(d.DatasetName, "&&") }},
	{schema.NamedDataset, func(_ string, d *schema.DatasetDeclaration) bool { return d.DatasetName != "" }},
	{schema.HFSDataset, func(p string, _ *schema.DatasetDeclaration) bool {
		return strings.Contains(p, "PATH=") || strings.Contains(p, "PATHDISP=")
	}},
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// dummyToken matches DUMMY as a parameter of its own, not as a DSN qualifier.
var dummyToken = regexp.MustCompile(`(^|[\s,])DUMMY([\s,]|$)`)

func compileAll(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

func trimQuotes(s string) string {
	return strings.Trim(s, `'"`)
}

func setDisposition(d *schema.DatasetDeclaration, v string) {
	if !strings.Contains(v, ",") {
		d.DispStatus = trimQuotes(v)
		return
	}
	parts := strings.Split(v, ",")
	fields := []*string{&d.DispStatus, &d.DispNormal, &d.DispAbnormal}
	for i, p := range parts {
		if i >= len(fields) {
			break
		}
		*fields[i] = strings.TrimSpace(trimQuotes(p))
	}
}

// cleanParams collapses whitespace and drops "..." continuation markers.
func cleanParams(params string) string {
	params = whitespaceRun.ReplaceAllString(params, " ")
	return strings.ReplaceAll(params, "...", "")
}

// ddName picks the statement label given the tokens and the DD keyword index.
func ddName(tokens []string, ddIndex int) string {
	switch {
	case ddIndex == 1 && strings.HasPrefix(tokens[0], "//"):
		return tokens[0][2:]
	case ddIndex == 0:
		return InlineDDName
	default:
		return tokens[ddIndex-1]
	}
}

// ParseStatement parses a complete, possibly joined, DD statement.
// Only the statement-level fields are filled in: dd_name, dataset details,
// dataset_type and original_line. When emitAll is false, statements without a
// dataset name, disposition or special type are rejected with ErrNoDatasetInfo.
func ParseStatement(statement string, emitAll bool) (schema.DatasetDeclaration, error) {
	original := strings.TrimSpace(statement)
	tokens := strings.Fields(strings.ToUpper(original))
	if len(tokens) < 2 {
		return schema.DatasetDeclaration{}, ErrTooFewTokens
	}

	ddIndex := -1
	for i, tok := range tokens {
		if tok == "DD" {
			ddIndex = i
			break
		}
	}
	if ddIndex == -1 {
		return schema.DatasetDeclaration{}, ErrNoDDKeyword
	}

	decl := schema.DatasetDeclaration{
		DDName:       ddName(tokens, ddIndex),
		OriginalLine: original,
	}

	params := cleanParams(strings.Join(tokens[ddIndex+1:], " "))
	for _, rule := range paramRules {
		for _, re := range rule.patterns {
			if m := re.FindStringSubmatch(params); m != nil {
				rule.set(&decl, m[1])
				break
			}
		}
	}

	decl.DatasetType = schema.OtherDataset
	for _, rule := range typeRules {
		if rule.match(params, &decl) {
			decl.DatasetType = rule.dt
			break
		}
	}

	if !emitAll && decl.DatasetName == "" && decl.DispStatus == "" && !decl.DatasetType.AlwaysEmitted() {
		return decl, ErrNoDatasetInfo
	}
	return decl, nil
}
