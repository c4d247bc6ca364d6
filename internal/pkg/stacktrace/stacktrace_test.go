package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/userlab/internal/registration/usecase.(*Usecase).Register(...)
	/src/userlab/internal/registration/usecase/register.go:42 +0x1a5
net/http.HandlerFunc.ServeHTTP(...)
	/usr/local/go/src/net/http/server.go:2294 +0x29
github.com/shandysiswandi/userlab/internal/pkg/router.(*Router).endpoint.func1(...)
	/src/userlab/internal/pkg/router/router.go:120
`)

	assert.Equal(t, []string{
		"internal/registration/usecase/register.go:42",
		"internal/pkg/router/router.go:120",
	}, InternalPaths(stack))

	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/src/main.go:10 +0x1\n")))
}
