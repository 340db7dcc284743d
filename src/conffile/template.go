package conffile

import _ "embed"

//go:embed default.flake8
var defaultTemplate []byte

// Template returns the canonical configuration file this project ships:
// every interpreted key explicit, every ignored code documented, already
// in normalized form.
func Template() []byte {
	return append([]byte(nil), defaultTemplate...)
}

// Canonical returns the parsed template. Tests pin its rendering back to
// the embedded bytes, so the textual format cannot drift silently.
func Canonical() *File {
	f, err := Parse(".flake8", defaultTemplate)
	if err != nil {
		panic("conffile: embedded template invalid: " + err.Error())
	}
	return f
}
