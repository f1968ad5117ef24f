// Package scanner extracts declarations and their comments from C and C++
// source text into a documentation tree.
//
// # Overview
//
// The scanner is not a parser. It reads characters through a small state
// machine, collects words and punctuation into a pending type, and decides
// at structural characters ({ } ( ) ; ,) whether a declaration is complete.
// Anything it does not recognize is dropped, so arbitrary real-world source
// (macros, templates, attributes) can be fed to it.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Reader    │────▶│    frame    │────▶│   doctree   │
//	│  (runes)    │     │   (FSM)     │     │  (Insert)   │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │
//	                           ▼
//	                    ┌─────────────┐
//	                    │   comment   │
//	                    │ (Normalize) │
//	                    └─────────────┘
//
// # States
//
//	None          whitespace, punctuation, declaration decisions
//	Preprocessor  a # directive, up to an unescaped newline
//	CComment      /* ... */
//	CxxComment    // ... to end of line
//	String        "..." literal
//	Character     '...' literal
//	Identifier    a word: letters, digits, _ . : ~ [ ] and some commas
//
// # Scopes
//
// Each aggregate body, namespace and extern block is scanned by a nested
// frame with its own pending comments, brace and parenthesis counters and
// type tokens. Struct, union and class bodies are bound to the new node;
// namespace and extern blocks keep the enclosing container, and namespace
// blocks prefix every name they declare with "NS::".
//
// # Comments
//
// A finished comment is attached, in priority order, to a pending argument
// or variable, a pending enumeration constant, a pending typedef (and the
// aggregate or enumeration it names), the enclosing container when it has
// no description yet, or else held for the next declaration. Up to two
// held comments are kept so that the canonical layout
//
//	/*
//	 * 'name()' - Summary.
//	 */
//
//	int				/* O - Result */
//	name(int a)			/* I - Input */
//
// documents both the function and its return value.
//
// # Usage
//
//	tree := doctree.NewRoot()
//	s := scanner.New(tree, scanner.WithBody(&body))
//	if err := s.ScanFile("foo.c"); err != nil {
//	    // *source.Error for malformed input
//	}
//
// # Thread Safety
//
// A Scanner and the tree it writes to must not be used from more than one
// goroutine at a time.
package scanner
