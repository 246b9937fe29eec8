package geosuggest

// Fixture data for the concrete end-to-end scenarios in spec §8: a small
// Russia/GB/Serbia bundle covering suggest, reverse, capital, and
// country_info, plus a Moscow-area cluster for population-weighted
// reverse geocoding.

const testCitiesTSV = "" +
	"472045\tVoronezh\tVoronezh\t\t51.6372\t39.1937\tP\tPPLA\tRU\t\t86\t\t\t\t848752\t\t104\tEurope/Moscow\t2023-05-06\n" +
	"2655734\tBeverley\tBeverley\t\t53.84228\t-0.42663\tP\tPPL\tGB\t\tENG\tE2\t\t\t29110\t\t10\tEurope/London\t2023-05-06\n" +
	"524901\tMoscow\tMoskva\t\t55.75222\t37.61556\tP\tPPLC\tRU\t\t48\t\t\t\t10452000\t\t144\tEurope/Moscow\t2019-09-05\n" +
	"551487\tLyublino\tLyublino\t\t55.67738\t37.76006\tP\tPPL\tRU\t\t48\t\t\t\t176000\t\t150\tEurope/Moscow\t2019-09-05\n" +
	"472052\tLyubertsy\tLyubertsy\t\t55.67719\t37.89322\tP\tPPL\tRU\t\t48\t\t\t\t171814\t\t146\tEurope/Moscow\t2019-09-05\n" +
	"792680\tBelgrade\tBeograd\t\t44.80401\t20.46513\tP\tPPLC\tRS\t\t00\t\t\t\t1166763\t\t117\tEurope/Belgrade\t2019-09-05\n" +
	// excluded feature codes: must never surface in any result
	"999001\tSmallHamlet\tSmallHamlet\t\t51.6400\t39.2000\tP\tPPLX\tRU\t\t86\t\t\t\t12\t\t100\tEurope/Moscow\t2023-05-06\n" +
	"999002\tAbandonedVillage\tAbandonedVillage\t\t51.6450\t39.2100\tP\tSTLMT\tRU\t\t86\t\t\t\t0\t\t100\tEurope/Moscow\t2023-05-06\n"

const testAlternateNamesTSV = "" +
	"1\t472045\tru\tВоронеж\t1\t0\t0\t0\t\t\n" +
	"2\t2017370\tru\tРоссия\t1\t0\t0\t0\t\t\n" +
	"3\t472039\tru\tВоронежская область\t1\t0\t0\t0\t\t\n" +
	"4\t2309118\tru\tИст-Райдинг-оф-Йоркшир\t1\t0\t0\t0\t\t\n" +
	"5\t6290252\tru\tСербия\t1\t0\t0\t0\t\t\n" +
	"6\t792680\tru\tБелград\t1\t0\t0\t0\t\t\n"

const testCountriesTSV = "" +
	"# format: iso alpha2, iso alpha3, iso numeric, fips, name, capital, area, population, continent, tld, currencyCode, currencyName, phone, postalCodeFormat, postalCodeRegex, languages, geonameid, neighbours, equivalentFipsCode\n" +
	"RU\tRUS\t643\tRS\tRussia\tMoscow\t17100000\t144478050\tEU\t.ru\tRUB\tRuble\t7\tNA\tNA\tru\t2017370\tGE\t\n" +
	"GB\tGBR\t826\tUK\tUnited Kingdom\tLondon\t244820\t66488991\tEU\t.uk\tGBP\tPound\t44\tNA\tNA\ten-GB\t2635167\tIE\t\n" +
	"RS\tSRB\t688\tRI\tSerbia\tBelgrade\t88361\t6908224\tEU\t.rs\tRSD\tDinar\t381\tNA\tNA\tsr\t6290252\tHU\t\n"

const testAdmin1TSV = "RU.86\tVoronezj\tVoronezj\t472039\n"

const testAdmin2TSV = "GB.ENG.E2\tEast Riding of Yorkshire\tEast Riding of Yorkshire\t2309118\n"

func testBuildOptions(filterLanguages []string) SourceFileContentOptions {
	names := testAlternateNamesTSV
	countries := testCountriesTSV
	admin1 := testAdmin1TSV
	admin2 := testAdmin2TSV
	return SourceFileContentOptions{
		Cities:          testCitiesTSV,
		Names:           &names,
		Countries:       &countries,
		Admin1Codes:     &admin1,
		Admin2Codes:     &admin2,
		FilterLanguages: filterLanguages,
	}
}

func mustBuildTestIndex(filterLanguages []string) *IndexData {
	data, err := NewIndexFromFileContents(testBuildOptions(filterLanguages))
	if err != nil {
		panic(err)
	}
	return data
}
