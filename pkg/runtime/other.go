package runtime

import (
	"context"
	"fmt"
	"log"

	"github.com/christopher-kleine/w4tones/pkg/debug"
	"github.com/tetratelabs/wazero/api"
)

// maxTraceLength caps how far trace looks for the terminating zero.
const maxTraceLength = 1024

// trace prints a message to the debug console from a *zero-terminated*
// string pointer.
func (rt *Runtime) trace(_ context.Context, mod api.Module, str uint32) {
	rt.log("%s", getString(mod.Memory(), str))
}

func getString(mem api.Memory, ptr uint32) string {
	if mem == nil {
		return ""
	}

	var buf []byte
	for i := uint32(0); i < maxTraceLength; i++ {
		b, ok := mem.ReadByte(ptr + i)
		if !ok || b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

func (rt *Runtime) log(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	debug.Log("cart", "%s", message)
	log.Printf("[%s] %s", rt.cartName, message)
}
