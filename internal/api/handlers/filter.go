package handlers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/scoutlab/scout-dashboard/internal/scouting"
)

// parseFilter builds the filter predicate set from query parameters.
// Absent parameters leave their dimension unrestricted.
func parseFilter(c *gin.Context) (scouting.Filter, error) {
	filter := scouting.Filter{
		Clubs:         c.QueryArray("club"),
		Nationalities: c.QueryArray("nationality"),
		Positions:     c.QueryArray("position"),
	}

	minAgeStr, maxAgeStr := c.Query("minAge"), c.Query("maxAge")
	if minAgeStr != "" || maxAgeStr != "" {
		ages := scouting.AgeRange{Min: 0, Max: math.MaxInt32}
		var err error
		if minAgeStr != "" {
			if ages.Min, err = strconv.Atoi(minAgeStr); err != nil {
				return filter, fmt.Errorf("invalid minAge %q", minAgeStr)
			}
		}
		if maxAgeStr != "" {
			if ages.Max, err = strconv.Atoi(maxAgeStr); err != nil {
				return filter, fmt.Errorf("invalid maxAge %q", maxAgeStr)
			}
		}
		filter.Ages = &ages
	}

	minValStr, maxValStr := c.Query("minValue"), c.Query("maxValue")
	if minValStr != "" || maxValStr != "" {
		values := scouting.ValueRange{Min: 0, Max: math.MaxFloat64}
		var err error
		if minValStr != "" {
			if values.Min, err = strconv.ParseFloat(minValStr, 64); err != nil {
				return filter, fmt.Errorf("invalid minValue %q", minValStr)
			}
		}
		if maxValStr != "" {
			if values.Max, err = strconv.ParseFloat(maxValStr, 64); err != nil {
				return filter, fmt.Errorf("invalid maxValue %q", maxValStr)
			}
		}
		filter.MarketValues = &values
	}

	return filter, nil
}
