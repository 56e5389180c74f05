package slug

// amharicToLatin is a character-level substitution table covering the Ethiopic
// syllabary as used by Amharic. Characters outside the table pass through
// untouched.
var amharicToLatin = map[rune]string{
	'ሀ': "ha", 'ሁ': "hu", 'ሂ': "hi", 'ሃ': "ha", 'ሄ': "he", 'ህ': "h", 'ሆ': "ho",
	'ለ': "le", 'ሉ': "lu", 'ሊ': "li", 'ላ': "la", 'ሌ': "le", 'ል': "l", 'ሎ': "lo",
	'ሐ': "ha", 'ሑ': "hu", 'ሒ': "hi", 'ሓ': "ha", 'ሔ': "he", 'ሕ': "h", 'ሖ': "ho",
	'መ': "me", 'ሙ': "mu", 'ሚ': "mi", 'ማ': "ma", 'ሜ': "me", 'ም': "m", 'ሞ': "mo",
	'ሠ': "se", 'ሡ': "su", 'ሢ': "si", 'ሣ': "sa", 'ሤ': "se", 'ሥ': "s", 'ሦ': "so",
	'ረ': "re", 'ሩ': "ru", 'ሪ': "ri", 'ራ': "ra", 'ሬ': "re", 'ር': "r", 'ሮ': "ro",
	'ሰ': "se", 'ሱ': "su", 'ሲ': "si", 'ሳ': "sa", 'ሴ': "se", 'ስ': "s", 'ሶ': "so",
	'ሸ': "she", 'ሹ': "shu", 'ሺ': "shi", 'ሻ': "sha", 'ሼ': "she", 'ሽ': "sh", 'ሾ': "sho",
	'ቀ': "qe", 'ቁ': "qu", 'ቂ': "qi", 'ቃ': "qa", 'ቄ': "qe", 'ቅ': "q", 'ቆ': "qo",
	'በ': "be", 'ቡ': "bu", 'ቢ': "bi", 'ባ': "ba", 'ቤ': "be", 'ብ': "b", 'ቦ': "bo",
	'ተ': "te", 'ቱ': "tu", 'ቲ': "ti", 'ታ': "ta", 'ቴ': "te", 'ት': "t", 'ቶ': "to",
	'ቸ': "che", 'ቹ': "chu", 'ቺ': "chi", 'ቻ': "cha", 'ቼ': "che", 'ች': "ch", 'ቾ': "cho",
	'ኀ': "ha", 'ኁ': "hu", 'ኂ': "hi", 'ኃ': "ha", 'ኄ': "he", 'ኅ': "h", 'ኆ': "ho",
	'ነ': "ne", 'ኑ': "nu", 'ኒ': "ni", 'ና': "na", 'ኔ': "ne", 'ን': "n", 'ኖ': "no",
	'ኘ': "nye", 'ኙ': "nyu", 'ኚ': "nyi", 'ኛ': "nya", 'ኜ': "nye", 'ኝ': "ny", 'ኞ': "nyo",
	'አ': "a", 'ኡ': "u", 'ኢ': "i", 'ኣ': "a", 'ኤ': "e", 'እ': "e", 'ኦ': "o",
	'ከ': "ke", 'ኩ': "ku", 'ኪ': "ki", 'ካ': "ka", 'ኬ': "ke", 'ክ': "k", 'ኮ': "ko",
	'ኸ': "khe", 'ኹ': "khu", 'ኺ': "khi", 'ኻ': "kha", 'ኼ': "khe", 'ኽ': "kh", 'ኾ': "kho",
	'ወ': "we", 'ዉ': "wu", 'ዊ': "wi", 'ዋ': "wa", 'ዌ': "we", 'ው': "w", 'ዎ': "wo",
	'ዐ': "a", 'ዑ': "u", 'ዒ': "i", 'ዓ': "a", 'ዔ': "e", 'ዕ': "e", 'ዖ': "o",
	'ዘ': "ze", 'ዙ': "zu", 'ዚ': "zi", 'ዛ': "za", 'ዜ': "ze", 'ዝ': "z", 'ዞ': "zo",
	'ዠ': "zhe", 'ዡ': "zhu", 'ዢ': "zhi", 'ዣ': "zha", 'ዤ': "zhe", 'ዥ': "zh", 'ዦ': "zho",
	'የ': "ye", 'ዩ': "yu", 'ዪ': "yi", 'ያ': "ya", 'ዬ': "ye", 'ይ': "y", 'ዮ': "yo",
	'ደ': "de", 'ዱ': "du", 'ዲ': "di", 'ዳ': "da", 'ዴ': "de", 'ድ': "d", 'ዶ': "do",
	'ጀ': "je", 'ጁ': "ju", 'ጂ': "ji", 'ጃ': "ja", 'ጄ': "je", 'ጅ': "j", 'ጆ': "jo",
	'ገ': "ge", 'ጉ': "gu", 'ጊ': "gi", 'ጋ': "ga", 'ጌ': "ge", 'ግ': "g", 'ጎ': "go",
	'ጠ': "te", 'ጡ': "tu", 'ጢ': "ti", 'ጣ': "ta", 'ጤ': "te", 'ጥ': "t", 'ጦ': "to",
	'ጨ': "che", 'ጩ': "chu", 'ጪ': "chi", 'ጫ': "cha", 'ጬ': "che", 'ጭ': "ch", 'ጮ': "cho",
	'ጰ': "pe", 'ጱ': "pu", 'ጲ': "pi", 'ጳ': "pa", 'ጴ': "pe", 'ጵ': "p", 'ጶ': "po",
	'ጸ': "tse", 'ጹ': "tsu", 'ጺ': "tsi", 'ጻ': "tsa", 'ጼ': "tse", 'ጽ': "ts", 'ጾ': "tso",
	'ፀ': "tse", 'ፁ': "tsu", 'ፂ': "tsi", 'ፃ': "tsa", 'ፄ': "tse", 'ፅ': "ts", 'ፆ': "tso",
	'ፈ': "fe", 'ፉ': "fu", 'ፊ': "fi", 'ፋ': "fa", 'ፌ': "fe", 'ፍ': "f", 'ፎ': "fo",
	'ፐ': "pe", 'ፑ': "pu", 'ፒ': "pi", 'ፓ': "pa", 'ፔ': "pe", 'ፕ': "p", 'ፖ': "po",
}

// Transliterate maps Amharic text to Latin-safe characters.
func Transliterate(text string) string {
	var b []byte
	for _, r := range text {
		if latin, ok := amharicToLatin[r]; ok {
			b = append(b, latin...)
		} else {
			b = append(b, string(r)...)
		}
	}
	return string(b)
}
