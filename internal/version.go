package internal

import (
	"fmt"
	"strconv"
	"time"
)

var (
	commitVersion string = "0.3.0"      // Should be updated during build
	commitDate    string = "1748208638" // commitDate in Epoch seconds (can be filled/updated in during build)
)

// GetVersion - get version and, when set, commitDate
func GetVersion() string {
	seconds, _ := strconv.Atoi(commitDate)
	msg := commitVersion
	if commitDate != "" {
		t := time.Unix(int64(seconds), 0)
		msg += fmt.Sprintf(", date: %s", t.Format("2006-01-02"))
	}
	return msg
}
