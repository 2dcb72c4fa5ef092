package zipfile

// Sanitize rewrites directory-traversal components of a zip entry name: a
// leading '/' becomes '_', and each complete ".." segment becomes "__". A
// ".." run is only a parent reference when it ends the name or is followed by
// a '/', so names like "a/..." are left alone. The replacement is always the
// same length as the input, which is what makes rewriting names in place
// possible without shifting any surrounding structure.
//
// Returns nil when the name is already safe. Sanitize is idempotent:
// applying it to its own output changes nothing.
func Sanitize(name []byte) []byte {
	if len(name) == 0 {
		return nil
	}
	fix := make([]byte, len(name))
	changed := false

	if name[0] == '/' {
		fix[0] = '_'
		changed = true
	} else {
		fix[0] = name[0]
	}

	// par counts how much of a parent reference has been matched: 1 after a
	// segment boundary, 2 and 3 for the dots. Seed it when the name itself
	// starts with a dot.
	par := 0
	if fix[0] == '.' {
		par = 2
	}
	for i := 1; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch == '/':
			par = 1
		case par > 0 && ch == '.':
			par++
			if par == 3 {
				if i == len(name)-1 || name[i+1] == '/' {
					changed = true
					fix[i-1] = '_'
					ch = '_'
				} else {
					par = 0
				}
			}
		default:
			par = 0
		}
		fix[i] = ch
	}

	if !changed {
		return nil
	}
	return fix
}
