package kbcustom

import "github.com/tuannm99/novakb/internal/record"

// PredictAz holds predicted azimuths and their components.
var PredictAz = register(record.MustSchema("predict_az",
	[]record.Column{
		record.Long("predazid", idLimit, minLong),
		record.Long("azcorrsurfid", idLimit, minLong),
		record.Long("orid", idLimit, minLong),
		record.Long("arid", idLimit, minLong),
		record.String("modname", 60).WithNA("-"),
		record.String("regname", 60).WithNA("-"),
		record.Double("model_az", sci, nan),
		record.Double("model_unc_az", sci, nan),
		record.Double("base_az", sci, nan),
		record.Double("base_unc_az", sci, -1),
		record.Double("path_corr_az", sci, -999),
		record.Double("path_unc_az", sci, -1),
		record.Double("d3_corr_az", sci, -999),
		record.Double("d3_unc_az", sci, -1),
		record.Double("bulk_corr_az", sci, -999),
		record.Double("jhd_corr_az", sci, -999),
		record.Double("total_unc_az", sci, nan),
		record.Double("daz_dlon", sci, nan),
		record.Double("daz_dlat", sci, nan),
		record.Double("daz_dz", sci, nan),
		record.Double("weight", sci, nan),
		record.String("err_code", 30),
	},
	[]string{"predazid"},
	[]string{"azcorrsurfid", "orid", "arid"},
))
