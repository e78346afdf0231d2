package quran

// Fatiha returns the seven verses of Surah Al-Fatiha. They ship with
// the binary so the opening surah stays readable when the content API
// is unreachable.
func Fatiha() []Verse {
	return []Verse{
		{
			ID:              1,
			Surah:           1,
			Number:          1,
			Arabic:          "بِسْمِ ٱللَّهِ ٱلرَّحْمَـٰنِ ٱلرَّحِيمِ",
			Transliteration: "Bismillāhi r-raḥmāni r-raḥīm",
			Translation:     "In the Name of Allah, the Most Compassionate, the Most Merciful.",
		},
		{
			ID:              2,
			Surah:           1,
			Number:          2,
			Arabic:          "ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَـٰلَمِينَ",
			Transliteration: "Al-ḥamdu lillāhi rabbi l-ʿālamīn",
			Translation:     "All praise is for Allah, Lord of all worlds.",
		},
		{
			ID:              3,
			Surah:           1,
			Number:          3,
			Arabic:          "ٱلرَّحْمَـٰنِ ٱلرَّحِيمِ",
			Transliteration: "Ar-raḥmāni r-raḥīm",
			Translation:     "The Most Compassionate, the Most Merciful.",
		},
		{
			ID:              4,
			Surah:           1,
			Number:          4,
			Arabic:          "مَـٰلِكِ يَوْمِ ٱلدِّينِ",
			Transliteration: "Māliki yawmi d-dīn",
			Translation:     "Master of the Day of Judgment.",
		},
		{
			ID:              5,
			Surah:           1,
			Number:          5,
			Arabic:          "إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ",
			Transliteration: "Iyyāka naʿbudu wa-iyyāka nastaʿīn",
			Translation:     "You alone we worship and You alone we ask for help.",
		},
		{
			ID:              6,
			Surah:           1,
			Number:          6,
			Arabic:          "ٱهْدِنَا ٱلصِّرَٰطَ ٱلْمُسْتَقِيمَ",
			Transliteration: "Ihdinā ṣ-ṣirāṭa l-mustaqīm",
			Translation:     "Guide us along the Straight Path,",
		},
		{
			ID:              7,
			Surah:           1,
			Number:          7,
			Arabic:          "صِرَٰطَ ٱلَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ ٱلْمَغْضُوبِ عَلَيْهِمْ وَلَا ٱلضَّآلِّينَ",
			Transliteration: "Ṣirāṭa l-laḏīna anʿamta ʿalayhim ġayri l-maġḍūbi ʿalayhim wa-lā ḍ-ḍāllīn",
			Translation:     "The path of those You have blessed—not those You are displeased with, or those who are astray.",
		},
	}
}
