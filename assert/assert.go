package assert

import "github.com/oomph-ac/strafe/oerror"

// IsTrue panics with the formatted message if ok is false. It is reserved for programmer misuse.
func IsTrue(ok bool, message string, args ...interface{}) {
	if !ok {
		panic(oerror.New("assertion failed: "+message, args...))
	}
}
