package rfm

// Customer segment names.
const (
	SegmentChampions            = "Champions"
	SegmentLoyal                = "Loyal"
	SegmentPotentialLoyalist    = "Potential Loyalist"
	SegmentPromising            = "Promising"
	SegmentNewCustomers         = "New Customers"
	SegmentNeedAttention        = "Need Attention"
	SegmentAboutToSleep         = "About To Sleep"
	SegmentAtRisk               = "At Risk"
	SegmentCannotLoseThem       = "Cannot Lose Them"
	SegmentHibernatingCustomers = "Hibernating Customers"
	SegmentLostCustomers        = "Lost Customers"
	SegmentOther                = "Other"
)

// segmentCodeSets is the published mapping of RFM codes to segments.
// Codes listed twice under the same segment are harmless no-ops.
var segmentCodeSets = []struct {
	segment string
	codes   []string
}{
	{SegmentChampions, []string{"555", "554", "545", "544", "545", "455", "445"}},
	{SegmentLoyal, []string{"543", "444", "435", "355", "354", "345", "344", "335"}},
	{SegmentPotentialLoyalist, []string{"553", "551", "552", "541", "542", "533", "532", "531",
		"452", "451", "442", "441", "431", "453", "433", "432", "423", "353", "352", "351",
		"342", "341", "333", "323"}},
	{SegmentPromising, []string{"525", "524", "523", "522", "521", "515", "514", "513",
		"425", "424", "413", "414", "415", "315", "314", "313"}},
	{SegmentNewCustomers, []string{"512", "511", "422", "421", "412", "411", "311"}},
	{SegmentNeedAttention, []string{"535", "534", "443", "434", "343", "334", "325", "324"}},
	{SegmentAboutToSleep, []string{"331", "321", "312", "221", "213", "231", "241", "251"}},
	{SegmentAtRisk, []string{"255", "254", "245", "244", "243", "252", "243", "242", "235",
		"234", "225", "224", "153", "152", "145", "143", "142", "135", "134", "133", "125", "124"}},
	{SegmentCannotLoseThem, []string{"155", "154", "144", "214", "215", "115", "114", "113"}},
	{SegmentHibernatingCustomers, []string{"332", "322", "233", "232", "223", "222", "132",
		"123", "122", "212", "211"}},
	{SegmentLostCustomers, []string{"111", "112", "121", "131", "141", "151"}},
}

var segmentByCode map[string]string

func init() {
	segmentByCode = make(map[string]string)
	for _, codeSet := range segmentCodeSets {
		for _, code := range codeSet.codes {
			segmentByCode[code] = codeSet.segment
		}
	}
}

// SegmentForCode Maps an RFM code to its segment name.
// Codes outside the published sets map to "Other".
func SegmentForCode(code string) string {
	if segment, exists := segmentByCode[code]; exists {
		return segment
	}
	return SegmentOther
}

// SegmentNames Returns all segment names in taxonomy order, with the
// catch-all "Other" last.
func SegmentNames() []string {
	names := make([]string, 0, len(segmentCodeSets)+1)
	for _, codeSet := range segmentCodeSets {
		names = append(names, codeSet.segment)
	}
	names = append(names, SegmentOther)
	return names
}
