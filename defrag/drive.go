package defrag

import (
	"fmt"
	"strings"
	"unicode"
)

// Drive is an immutable simulated drive profile. IOPS paces operations and audio.
type Drive struct {
	Letter       rune
	CapacityMB   int
	ClusterCount int
	IOPS         int
	Name         string
}

func (d Drive) String() string {
	return fmt.Sprintf("%c: %s", d.Letter, d.Name)
}

// PlaybackRate maps the drive IOPS onto an audio playback rate.
func (d Drive) PlaybackRate() float64 { return PlaybackRate(d.IOPS) }

// Drive catalogue
var (
	DriveC = Drive{Letter: 'C', CapacityMB: 2048, ClusterCount: 4096, IOPS: 2, Name: "Hard Disk (2GB, 2 IOPS)"}
	DriveD = Drive{Letter: 'D', CapacityMB: 1024, ClusterCount: 2048, IOPS: 3, Name: "Hard Disk (1GB, 3 IOPS)"}
	DriveE = Drive{Letter: 'E', CapacityMB: 512, ClusterCount: 1024, IOPS: 1, Name: "Floppy Disk (512MB, 1 IOPS)"}
	DriveF = Drive{Letter: 'F', CapacityMB: 2048, ClusterCount: 4096, IOPS: 8, Name: "SSHD (2GB, 8 IOPS)"}
)

// DefaultDrive is used when no drive, or an unknown drive, is selected.
var DefaultDrive = DriveC

// Drives returns the catalogue in display order.
func Drives() []Drive {
	return []Drive{DriveC, DriveD, DriveE, DriveF}
}

// DriveByLetter finds a drive by its letter, ignoring case.
func DriveByLetter(letter rune) (Drive, bool) {
	letter = unicode.ToUpper(letter)
	for _, d := range Drives() {
		if d.Letter == letter {
			return d, true
		}
	}
	return Drive{}, false
}

// LookupDrive resolves "C", "c:" and similar to a drive, falling back to DefaultDrive.
func LookupDrive(s string) Drive {
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	if len([]rune(s)) != 1 {
		return DefaultDrive
	}
	if d, ok := DriveByLetter([]rune(s)[0]); ok {
		return d
	}
	return DefaultDrive
}

// Playback rate mapping: IOPS in [minRateIOPS, maxRateIOPS] maps linearly onto
// [MinPlaybackRate, MaxPlaybackRate].
const (
	MinPlaybackRate = 0.5
	MaxPlaybackRate = 4.0
	minRateIOPS     = 0
	maxRateIOPS     = 16
)

// PlaybackRate returns the clamped audio rate for iops.
func PlaybackRate(iops int) float64 {
	rate := float64(iops-minRateIOPS)*(MaxPlaybackRate-MinPlaybackRate)/float64(maxRateIOPS-minRateIOPS) + MinPlaybackRate
	return min(max(rate, MinPlaybackRate), MaxPlaybackRate)
}
