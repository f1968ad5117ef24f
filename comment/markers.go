package comment

import "strings"

// Format identifies a documentation output format for @exclude@ filtering.
type Format int

const (
	FormatNone Format = iota
	FormatHTML
	FormatXML
	FormatMan
	FormatEPUB
)

var formatNames = map[Format]string{
	FormatNone: "none",
	FormatHTML: "html",
	FormatXML:  "xml",
	FormatMan:  "man",
	FormatEPUB: "epub",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "Unknown"
}

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, bool) {
	for f, n := range formatNames {
		if n == name {
			return f, true
		}
	}
	return FormatNone, false
}

const (
	markerPrivate    = "@private@"
	markerDeprecated = "@deprecated@"
	markerSince      = "@since "
	markerExclude    = "@exclude "
	markerBody       = "@body@"
)

func Private(text string) bool {
	return strings.Contains(text, markerPrivate)
}

func Deprecated(text string) bool {
	return strings.Contains(text, markerDeprecated)
}

// Since returns the version named by an @since ...@ marker.
func Since(text string) (string, bool) {
	i := strings.Index(text, markerSince)
	if i < 0 {
		return "", false
	}
	v := text[i+len(markerSince):]
	if end := strings.IndexByte(v, '@'); end >= 0 {
		v = v[:end]
	}
	return v, true
}

// Info returns the annotation renderers show next to a symbol: DEPRECATED,
// the @since version, or "". The first marker in the text wins.
func Info(text string) string {
	for i := strings.IndexByte(text, '@'); i >= 0; {
		rest := text[i:]
		if strings.HasPrefix(rest, markerDeprecated) {
			return "DEPRECATED"
		}
		if strings.HasPrefix(rest, markerSince) {
			v, _ := Since(rest)
			return v
		}
		next := strings.IndexByte(text[i+1:], '@')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return ""
}

// Excluded reports whether an @exclude fmt[,fmt]@ marker hides the text
// from format f. "all" excludes every format; the legacy names "docset"
// and "tokens" are skipped. An unrecognized name excludes everywhere.
func Excluded(text string, f Format) bool {
	i := strings.Index(text, markerExclude)
	if i < 0 {
		return false
	}
	list := text[i+len(markerExclude):]
	if strings.HasPrefix(list, "all@") {
		return true
	}

	for !strings.HasPrefix(list, "@") {
		var name string
		switch {
		case strings.HasPrefix(list, "docset"):
			name = "docset"
		case strings.HasPrefix(list, "tokens"):
			name = "tokens"
		case strings.HasPrefix(list, "epub"):
			name = "epub"
		case strings.HasPrefix(list, "html"):
			name = "html"
		case strings.HasPrefix(list, "man"):
			name = "man"
		case strings.HasPrefix(list, "xml"):
			name = "xml"
		default:
			return true
		}
		if name == f.String() {
			return true
		}

		list = list[len(name):]
		switch {
		case strings.HasPrefix(list, ","):
			list = list[1:]
		case strings.HasPrefix(list, "@"):
		default:
			return true
		}
	}
	return false
}

// SplitBody returns the text following an @body@ marker.
func SplitBody(text string) (string, bool) {
	i := strings.Index(text, markerBody)
	if i < 0 {
		return "", false
	}
	return strings.TrimSpace(text[i+len(markerBody):]), true
}
