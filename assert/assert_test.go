package assert

import (
	"strings"
	"testing"

	"github.com/oomph-ac/strafe/oerror"
)

func TestIsTrue(t *testing.T) {
	IsTrue(true, "never raised")

	defer func() {
		err, ok := recover().(*oerror.Error)
		if !ok {
			t.Fatalf("recovered %v, want *oerror.Error", err)
		}
		if !strings.HasPrefix(err.Error(), "assertion failed: ") || !strings.HasSuffix(err.Error(), "tick rate 0") {
			t.Fatalf("message = %q", err.Error())
		}
	}()
	IsTrue(false, "tick rate %d", 0)
	t.Fatal("IsTrue(false) did not panic")
}
