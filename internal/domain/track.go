package domain

import "time"

// TrackPoint is one sample of a feature's central meridian distance,
// west positive.
type TrackPoint struct {
	Time   time.Time
	CMDDeg float64
}

// Crossing marks the instant a tracked feature reaches a target central
// meridian distance, e.g. 0 for central meridian passage or +90 for the
// west limb.
type Crossing struct {
	Time      time.Time
	TargetDeg float64
}

// GenerateTrack samples the central meridian distance of a feature at a
// fixed heliographic latitude as differential rotation carries it across
// the disk. cmdDeg is the distance at start.
func GenerateTrack(model *RotationModel, start, end time.Time, interval time.Duration, latitudeDeg, cmdDeg float64, profile Profile, frame Frame) ([]TrackPoint, error) {
	if model == nil {
		model = &RotationModel{}
	}

	points := make([]TrackPoint, 0)
	for t := start; !t.After(end); t = t.Add(interval) {
		rot, err := model.DiffRot(t.Sub(start), latitudeDeg, profile, frame)
		if err != nil {
			return nil, err
		}
		points = append(points, TrackPoint{Time: t, CMDDeg: cmdDeg + rot})
	}

	return points, nil
}

// FindCrossings locates the instants where a track reaches the target
// central meridian distance. The rate at fixed latitude is constant, so
// linear interpolation between the bracketing samples recovers each
// crossing exactly.
func FindCrossings(points []TrackPoint, targetDeg float64) []Crossing {
	crossings := make([]Crossing, 0)
	if len(points) == 0 {
		return crossings
	}

	for i := 1; i < len(points); i++ {
		d0 := points[i-1].CMDDeg - targetDeg
		d1 := points[i].CMDDeg - targetDeg

		// A sample sitting exactly on the target counts once.
		if d0 == 0 {
			crossings = append(crossings, Crossing{Time: points[i-1].Time, TargetDeg: targetDeg})
			continue
		}
		if d0*d1 < 0 {
			crossings = append(crossings, Crossing{
				Time:      refineCrossing(points[i-1], points[i], targetDeg),
				TargetDeg: targetDeg,
			})
		}
	}

	if last := points[len(points)-1]; last.CMDDeg == targetDeg {
		crossings = append(crossings, Crossing{Time: last.Time, TargetDeg: targetDeg})
	}

	return crossings
}

// refineCrossing interpolates the crossing instant between two samples
// bracketing the target.
func refineCrossing(before, after TrackPoint, targetDeg float64) time.Time {
	span := after.CMDDeg - before.CMDDeg
	if span == 0 {
		return before.Time
	}
	frac := (targetDeg - before.CMDDeg) / span
	return before.Time.Add(time.Duration(frac * float64(after.Time.Sub(before.Time))))
}
