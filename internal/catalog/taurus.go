package catalog

import "github.com/nao1215/distdist/internal/model"

// Reference returns the 13 catalogued Taurus-Auriga stars, in catalog order.
// A fresh slice is returned on every call so callers cannot mutate the
// embedded dataset.
func Reference() []model.StarRecord {
	return []model.StarRecord{
		{
			Name: "AATau", SpectralType: "K7-M0", Radius: 1.5, VSinI: 11.4, Period: model.Days(8.22),
			RightAscension: 68.7309, Declination: 24.4813, Parallax: 7.29, Distance: 137.20,
			ProperMotionRA: 3.48, ProperMotionDec: -20.99, GaiaDR2: "147818450613367424",
		},
		{
			Name: "CITau", SpectralType: "K7", Radius: 1.6, VSinI: 10.4,
			RightAscension: 68.4668, Declination: 22.8416, Parallax: 6.30, Distance: 158.71,
			ProperMotionRA: 8.90, ProperMotionDec: -17.07, GaiaDR2: "145203159127518336",
		},
		{
			Name: "CX Tau", SpectralType: "M2", Radius: 1.8, VSinI: 18.2,
			RightAscension: 63.6995, Declination: 26.8030, Parallax: 7.82, Distance: 127.93,
			ProperMotionRA: 9.02, ProperMotionDec: -22.45, GaiaDR2: "162758236656524416",
		},
		{
			Name: "CYTau", SpectralType: "M1", Radius: 1.5, VSinI: 10.0, Period: model.Days(7.50),
			RightAscension: 64.3906, Declination: 28.3462, Parallax: 7.76, Distance: 128.88,
			ProperMotionRA: 9.18, ProperMotionDec: -25.55, GaiaDR2: "164698634160139264",
		},
		{
			Name: "DETau", SpectralType: "M1", Radius: 2.2, VSinI: 10.0, Period: model.Days(7.60),
			RightAscension: 65.4819, Declination: 27.9183, Parallax: 7.85, Distance: 127.37,
			ProperMotionRA: 10.75, ProperMotionDec: -27.22, GaiaDR2: "152511475478780416",
		},
		{
			Name: "DGTau", SpectralType: "M0", Radius: 2.3, VSinI: 21.7, Period: model.Days(6.30),
			RightAscension: 66.7696, Declination: 26.1044, Parallax: 8.25, Distance: 121.18,
			ProperMotionRA: 6.16, ProperMotionDec: -19.30, GaiaDR2: "151262700852297728",
		},
		{
			Name: "DITau", SpectralType: "M0", Radius: 2.1, VSinI: 10.5, Period: model.Days(7.70),
			RightAscension: 67.4270, Declination: 26.5469, Parallax: 7.40, Distance: 135.12,
			ProperMotionRA: 6.90, ProperMotionDec: -21.21, GaiaDR2: "151374198202645376",
		},
		{
			Name: "DLTau", SpectralType: "M1", Radius: 1.4, VSinI: 16.0, Period: model.Days(9.40),
			RightAscension: 68.4129, Declination: 25.3438, Parallax: 6.28, Distance: 159.34,
			ProperMotionRA: 9.33, ProperMotionDec: -18.29, GaiaDR2: "148010281032823552",
		},
		{
			Name: "DNTau", SpectralType: "M0", Radius: 2.0, VSinI: 8.1, Period: model.Days(6.30),
			RightAscension: 68.8641, Declination: 24.2496, Parallax: 7.80, Distance: 128.22,
			ProperMotionRA: 6.05, ProperMotionDec: -20.77, GaiaDR2: "147606657186323712",
		},
		{
			Name: "DOTau", SpectralType: "K7", Radius: 2.2, VSinI: 11.0,
			RightAscension: 69.6191, Declination: 26.1803, Parallax: 7.17, Distance: 139.38,
			ProperMotionRA: 6.13, ProperMotionDec: -21.34, GaiaDR2: "148449913884294528",
		},
		{
			Name: "IPTau", SpectralType: "M0", Radius: 1.5, VSinI: 11.0, Period: model.Days(3.25),
			RightAscension: 66.2379, Declination: 27.1989, Parallax: 7.66, Distance: 130.57,
			ProperMotionRA: 8.36, ProperMotionDec: -26.75, GaiaDR2: "152226491513195648",
		},
		{
			Name: "V1070Tau", SpectralType: "K7", Radius: 2.1, VSinI: 12.9, Period: model.Days(5.66),
			RightAscension: 64.9220, Declination: 27.8299, Parallax: 7.91, Distance: 126.37,
			ProperMotionRA: 9.94, ProperMotionDec: -24.96, GaiaDR2: "164422961683000320",
		},
		{
			Name: "V1115Tau", SpectralType: "M0", Radius: 1.5, VSinI: 21.9, Period: model.Days(3.35),
			RightAscension: 69.0796, Declination: 25.7163, Parallax: 7.81, Distance: 128.02,
			ProperMotionRA: 8.91, ProperMotionDec: -27.47, GaiaDR2: "148037764527442944",
		},
	}
}

// WithPeriod splits records into those with a measured rotation period and
// those without. Both results keep the input order.
func WithPeriod(records []model.StarRecord) (kept, excluded []model.StarRecord) {
	kept = make([]model.StarRecord, 0, len(records))
	for _, r := range records {
		if r.HasPeriod() {
			kept = append(kept, r)
		} else {
			excluded = append(excluded, r)
		}
	}
	return kept, excluded
}
