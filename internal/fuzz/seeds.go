package fuzztests

const (
	maxFuzzInput = 16 << 10 // 16 KiB на вход, чтобы итерации оставались быстрыми
	maxFuzzEdits = 64
)

var contentSeeds = []string{
	"",
	"\n",
	"\n\n\n",
	"one",
	"one\ntwo\n",
	"one\ntwo",
	"trailing spaces   \n\ttabs\n",
	"\r\nwindows\r\n",
	"日本語\nテキスト\n",
	"\x00binary\xff\n",
}

var scriptSeeds = []string{
	"",
	"[[edit]]\nop = \"append-line\"\ntext = \"x\"\n",
	"[[edit]]\nop = \"insert-string\"\nline = 1\npos = 3\ntext = \"y\"\n",
	"[[edit]]\nop = \"remove-line\"\nline = -1\n",
	"[[edit]]\nop = \"bogus\"\n",
	"[[edit]\n",
	"edit = 3\n",
}

func clamp(b []byte) []byte {
	if len(b) > maxFuzzInput {
		return append([]byte(nil), b[:maxFuzzInput]...)
	}
	return b
}
