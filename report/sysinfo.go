package report

import (
	"github.com/mackerelio/go-osstat/memory"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrintMemStats print the current memory usage of the host.
// Probe errors are ignored, this is diagnostic output only.
func PrintMemStats() {
	mem, err := memory.Get()
	if err != nil {
		return
	}

	// calc
	totalMB := int(mem.Total / (1024 * 1024))
	usedMB := int(mem.Used / (1024 * 1024))
	freeMB := int(mem.Free / (1024 * 1024))

	// print ram stats
	p := message.NewPrinter(language.English)
	_, _ = p.Printf("+ memory total: %d MB\n", totalMB)
	_, _ = p.Printf("+ memory used: %d MB\n", usedMB)
	_, _ = p.Printf("+ memory free: %d MB\n", freeMB)
}
