package signage

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

const sep = "\x1f"

// SequenceVersion fingerprints an ordered item sequence. Two sequences with
// the same items in the same order, with the same displayed fields, share a
// version.
func SequenceVersion(items []Item) string {
	d := xxhash.New()
	writeItems(d, items)
	return strconv.FormatUint(d.Sum64(), 16)
}

// StatusVersion fingerprints everything the player renders from a status.
func StatusVersion(s Status) string {
	d := xxhash.New()
	d.WriteString(string(s.Device.LayoutMode) + sep + s.Device.Name + sep + strconv.Itoa(s.Device.SplitRatio) + sep)
	writeItems(d, s.Contents)
	for _, n := range s.Notices {
		d.WriteString("n" + sep + n + sep)
	}
	for _, e := range s.Schedules {
		d.WriteString("s" + sep + e.ID + sep + e.Date.UTC().Format("2006-01-02T15:04:05.999999999") + sep + e.Content + sep)
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

func writeItems(d *xxhash.Digest, items []Item) {
	for _, it := range items {
		d.WriteString(it.ID + sep +
			string(it.Type) + sep +
			it.Title + sep +
			it.URL + sep +
			it.Body + sep +
			strconv.Itoa(it.Duration) + sep +
			string(it.Zone) + sep +
			strconv.Itoa(it.DisplayOrder) + sep)
	}
}
