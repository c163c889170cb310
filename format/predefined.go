package format

// Commonly used formats. Packed formats list their fields from the most
// significant bit down.
var (
	Gray8           = MustParse("unorm8:R")
	RGB8            = MustParse("unorm8:R,unorm8:G,unorm8:B")
	RGBA8           = MustParse("unorm8:R,unorm8:G,unorm8:B,unorm8:A")
	BGRA8           = MustParse("unorm8:B,unorm8:G,unorm8:R,unorm8:A")
	R5G6B5          = MustParse("unorm5:R,unorm6:G,unorm5:B")
	RGBA4           = MustParse("unorm4:R,unorm4:G,unorm4:B,unorm4:A")
	A2B10G10R10     = MustParse("unorm2:A,unorm10:B,unorm10:G,unorm10:R")
	B10G11R11Ufloat = MustParse("ufloat10:B,ufloat11:G,ufloat11:R")
	RGB9E5          = MustParse("exp5:E,ufloat9:B,ufloat9:G,ufloat9:R")
	RGBA16F         = MustParse("sfloat16:R,sfloat16:G,sfloat16:B,sfloat16:A")
	RGBA32F         = MustParse("sfloat32:R,sfloat32:G,sfloat32:B,sfloat32:A")
)
