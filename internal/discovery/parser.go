package discovery

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	packagePattern = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	importPattern  = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+(?:\.\*)?)\s*;`)
	// class or interface keyword followed by the type name; "Foo.class" literals are filtered in code
	declarationPattern = regexp.MustCompile(`\b(class|interface)\s+([A-Za-z_$][\w$]*)`)
	annotationPattern  = regexp.MustCompile(`@\s*([\w.]+)`)
	modifierPattern    = regexp.MustCompile(`\b(public|protected|private|abstract|final|static|sealed|strictfp)\b`)
)

// skipTestImports and skipTestAnnotations together mark a disabled test class
var (
	skipTestImports     = map[string]bool{"org.junit.jupiter.api.Disabled": true, "org.junit.Ignore": true}
	skipTestAnnotations = map[string]bool{"Disabled": true, "Ignore": true}
)

var (
	// ErrNoDeclaration is returned for sources without a class or interface declaration
	ErrNoDeclaration = errors.New("no class or interface declaration found")
	// ErrNoTestClasses is returned when discovery yields nothing to split
	ErrNoTestClasses = errors.New("found no test classes")
)

// ClassInfo describes the first type declared in a Java source file
type ClassInfo struct {
	Package     string
	Name        string
	Imports     []string
	Annotations []string
	Modifiers   []string
	Interface   bool
}

// QualifiedName returns the fully-qualified class name
func (c ClassInfo) QualifiedName() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// Abstract reports whether the class is declared abstract
func (c ClassInfo) Abstract() bool {
	for _, m := range c.Modifiers {
		if m == "abstract" {
			return true
		}
	}
	return false
}

// Disabled reports whether the class is annotated with a JUnit skip annotation that is also imported
func (c ClassInfo) Disabled() bool {
	hasImport := false
	for _, imp := range c.Imports {
		if skipTestImports[imp] {
			hasImport = true
			break
		}
	}
	if !hasImport {
		return false
	}
	for _, annotation := range c.Annotations {
		if skipTestAnnotations[annotation] {
			return true
		}
	}
	return false
}

// SkipReason returns why the class is not a runnable test, or "" if it is one
func (c ClassInfo) SkipReason() string {
	switch {
	case c.Interface:
		return "interface"
	case c.Abstract():
		return "abstract class"
	case c.Disabled():
		return "disabled test class"
	}
	return ""
}

// Parser extracts class information from Java test sources
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads and parses a Java source file
func (p *Parser) ParseFile(filePath string) (ClassInfo, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return ClassInfo{}, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return p.Parse(string(content))
}

// Parse extracts the package, imports and first class or interface declaration from Java source
func (p *Parser) Parse(source string) (ClassInfo, error) {
	code := stripCommentsAndLiterals(source)

	var info ClassInfo
	if match := packagePattern.FindStringSubmatch(code); match != nil {
		info.Package = match[1]
	}
	for _, match := range importPattern.FindAllStringSubmatch(code, -1) {
		info.Imports = append(info.Imports, match[1])
	}

	for _, loc := range declarationPattern.FindAllStringSubmatchIndex(code, -1) {
		start := loc[0]
		if start > 0 && code[start-1] == '.' {
			continue
		}
		// annotations and modifiers sit between the previous statement or block and the keyword
		header := code[headerStart(code, start):start]
		isAnnotationType := strings.HasSuffix(strings.TrimSpace(header), "@")
		if isAnnotationType {
			header = strings.TrimSuffix(strings.TrimSpace(header), "@")
		}

		info.Name = code[loc[4]:loc[5]]
		info.Interface = code[loc[2]:loc[3]] == "interface"
		for _, match := range annotationPattern.FindAllStringSubmatch(header, -1) {
			info.Annotations = append(info.Annotations, match[1])
		}
		for _, match := range modifierPattern.FindAllStringSubmatch(stripAnnotationArguments(header), -1) {
			info.Modifiers = append(info.Modifiers, match[1])
		}
		return info, nil
	}

	return ClassInfo{}, ErrNoDeclaration
}

// headerStart returns the offset after the last statement or block boundary before end,
// ignoring boundaries inside annotation arguments
func headerStart(code string, end int) int {
	depth := 0
	for i := end - 1; i >= 0; i-- {
		switch code[i] {
		case ')':
			depth++
		case '(':
			if depth > 0 {
				depth--
			}
		case ';', '{', '}':
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// stripAnnotationArguments removes parenthesised annotation arguments so
// that values such as @SuppressWarnings(...) cannot be mistaken for modifiers
func stripAnnotationArguments(header string) string {
	var b strings.Builder
	depth := 0
	for _, r := range header {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripCommentsAndLiterals blanks out comments, string, text block and char literals
// while keeping line structure intact
func stripCommentsAndLiterals(source string) string {
	var b strings.Builder
	b.Grow(len(source))

	n := len(source)
	for i := 0; i < n; i++ {
		c := source[i]
		switch {
		case c == '/' && i+1 < n && source[i+1] == '/':
			for i < n && source[i] != '\n' {
				i++
			}
			if i < n {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < n && source[i+1] == '*':
			i += 2
			for i < n && !(source[i] == '*' && i+1 < n && source[i+1] == '/') {
				if source[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			i++
			b.WriteByte(' ')
		case c == '"' && strings.HasPrefix(source[i:], `"""`):
			i += 3
			for i < n && !strings.HasPrefix(source[i:], `"""`) {
				if source[i] == '\\' {
					i++
				} else if source[i] == '\n' {
					b.WriteByte('\n')
				}
				i++
			}
			i += 2
			b.WriteString(`""`)
		case c == '"' || c == '\'':
			quote := c
			i++
			for i < n && source[i] != quote && source[i] != '\n' {
				if source[i] == '\\' {
					i++
				}
				i++
			}
			b.WriteByte(quote)
			b.WriteByte(quote)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
