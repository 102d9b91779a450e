package inventory

import (
	"fmt"
	"time"
)

const lotCodeDateLayout = "20060102"

// LotCodeSequence returns the name of the counter that numbers the lot
// codes of day
func LotCodeSequence(day time.Time) string {
	return "lot:" + day.UTC().Format(lotCodeDateLayout)
}

// FormatLotCode renders the seq-th lot code of day as L<YYYYMMDD>-<seq>
func FormatLotCode(day time.Time, seq int64) string {
	return fmt.Sprintf("L%s-%03d", day.UTC().Format(lotCodeDateLayout), seq)
}
