package domain

import (
    "encoding/json"
    "fmt"
    "os"
)

// RotationCoeff is one profile's coefficient override, in urad/s.
// omega(lat) = A + B*sin^2(lat) + C*sin^4(lat)
type RotationCoeff struct {
    Profile string  `json:"profile"`
    A       float64 `json:"a_urad_s"`
    B       float64 `json:"b_urad_s"`
    C       float64 `json:"c_urad_s"`
    Source  string  `json:"source,omitempty"`
}

type RotationCoeffSet struct {
    Coeffs []RotationCoeff `json:"coeffs"`
}

// ProfileCoeffs maps the loaded entries onto known profiles. Unknown
// names and the closed-form allen profile are skipped.
func (s *RotationCoeffSet) ProfileCoeffs() map[Profile]RotationCoeffs {
    out := make(map[Profile]RotationCoeffs)
    for _, c := range s.Coeffs {
        if c.Profile == "" { continue }
        p, err := ParseProfile(c.Profile)
        if err != nil || p == ProfileAllen { continue }
        out[p] = RotationCoeffs{A: c.A, B: c.B, C: c.C}
    }
    return out
}

func LoadRotationCoeffSet(path string) (*RotationCoeffSet, error) {
    b, err := os.ReadFile(path)
    if err != nil { return nil, err }
    var set RotationCoeffSet
    if err := json.Unmarshal(b, &set); err != nil {
        return nil, fmt.Errorf("invalid rotation coeff json: %w", err)
    }
    return &set, nil
}

func LoadRotationCoeffSetFromEnv() (*RotationCoeffSet, error) {
    path := os.Getenv("ROTATION_COEFFS_PATH")
    if path == "" {
        // Try default path
        path = "data/rotation_coeffs.json"
    }
    if _, err := os.Stat(path); err != nil {
        return nil, err
    }
    return LoadRotationCoeffSet(path)
}
