package record

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Summary returns the headline numbers of the run as a protobuf Struct.
func (r *Record) Summary() (*structpb.Struct, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := timestamppb.New(r.start)
	if err := started.CheckValid(); err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	follow := r.followRatiosLocked()
	ratios := make([]interface{}, 0, len(follow))
	for _, f := range follow {
		ratios = append(ratios, f)
	}

	unique := len(r.chand)
	return structpb.NewStruct(map[string]interface{}{
		"team1":          r.opts.Team1,
		"team2":          r.opts.Team2,
		"started_at":     started.AsTime().Format(time.RFC3339),
		"uptime_seconds": r.opts.Now().Sub(r.start).Seconds(),
		"games":          r.games,
		"hands":          r.hands,
		"euchres":        r.euchres,
		"euchre_pct":     pct(r.euchres, r.hands),
		"unique_hands":   unique,
		"coverage_pct":   100 * float64(unique) / CanonicalHands,
		"max_reps":       r.maxReps,
		"makes_by_team": []interface{}{
			r.makers.Team[0], r.makers.Team[1],
		},
		"euchres_by_team": []interface{}{
			r.euchred.Team[0], r.euchred.Team[1],
		},
		"follow_ratios": ratios,
	})
}

// SummaryJSON renders Summary with protojson.
func (r *Record) SummaryJSON() ([]byte, error) {
	s, err := r.Summary()
	if err != nil {
		return nil, err
	}
	return (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(s)
}
