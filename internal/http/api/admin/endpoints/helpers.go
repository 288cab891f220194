package endpoints

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage/internal/http/api/admin/packets"
)

// parseWindow reads an optional eligibility window. Calendar dates are in
// server local time and a calendar end date covers that whole day.
func parseWindow(startRaw, endRaw string) (start, end *time.Time, apiErr *api.APIError) {
	start, err := packets.ParseOptionalDate(startRaw, time.Local)
	if err != nil {
		log.Warn().Str("startDate", startRaw).Msg("[content] invalid start date")
		return nil, nil, api.BadRequest("invalid startDate")
	}
	end, err = packets.ParseOptionalDate(endRaw, time.Local)
	if err != nil {
		log.Warn().Str("endDate", endRaw).Msg("[content] invalid end date")
		return nil, nil, api.BadRequest("invalid endDate")
	}
	if end != nil && len(endRaw) == len("2006-01-02") {
		eod := end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &eod
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, nil, api.BadRequest("startDate is after endDate")
	}
	return start, end, nil
}
