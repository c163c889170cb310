package hwformat

import "github.com/gogpu/gputypes"

// webgpuFormats names the catalog entries that WebGPU also defines. WebGPU
// spells packed formats by channel, low bits first, so A2B10G10R10 is RGB10A2.
var webgpuFormats = map[string]gputypes.TextureFormat{
	"R8_UNORM":                  gputypes.TextureFormatR8Unorm,
	"R8_SNORM":                  gputypes.TextureFormatR8Snorm,
	"R8_UINT":                   gputypes.TextureFormatR8Uint,
	"R8_SINT":                   gputypes.TextureFormatR8Sint,
	"R8G8_UNORM":                gputypes.TextureFormatRG8Unorm,
	"R8G8_SNORM":                gputypes.TextureFormatRG8Snorm,
	"R8G8_UINT":                 gputypes.TextureFormatRG8Uint,
	"R8G8_SINT":                 gputypes.TextureFormatRG8Sint,
	"R8G8B8A8_UNORM":            gputypes.TextureFormatRGBA8Unorm,
	"R8G8B8A8_SNORM":            gputypes.TextureFormatRGBA8Snorm,
	"R8G8B8A8_UINT":             gputypes.TextureFormatRGBA8Uint,
	"R8G8B8A8_SINT":             gputypes.TextureFormatRGBA8Sint,
	"R8G8B8A8_SRGB":             gputypes.TextureFormatRGBA8UnormSrgb,
	"B8G8R8A8_UNORM":            gputypes.TextureFormatBGRA8Unorm,
	"B8G8R8A8_SRGB":             gputypes.TextureFormatBGRA8UnormSrgb,
	"R16_UNORM":                 gputypes.TextureFormatR16Unorm,
	"R16_SNORM":                 gputypes.TextureFormatR16Snorm,
	"R16_UINT":                  gputypes.TextureFormatR16Uint,
	"R16_SINT":                  gputypes.TextureFormatR16Sint,
	"R16_SFLOAT":                gputypes.TextureFormatR16Float,
	"R16G16_UNORM":              gputypes.TextureFormatRG16Unorm,
	"R16G16_SNORM":              gputypes.TextureFormatRG16Snorm,
	"R16G16_UINT":               gputypes.TextureFormatRG16Uint,
	"R16G16_SINT":               gputypes.TextureFormatRG16Sint,
	"R16G16_SFLOAT":             gputypes.TextureFormatRG16Float,
	"R16G16B16A16_UNORM":        gputypes.TextureFormatRGBA16Unorm,
	"R16G16B16A16_SNORM":        gputypes.TextureFormatRGBA16Snorm,
	"R16G16B16A16_UINT":         gputypes.TextureFormatRGBA16Uint,
	"R16G16B16A16_SINT":         gputypes.TextureFormatRGBA16Sint,
	"R16G16B16A16_SFLOAT":       gputypes.TextureFormatRGBA16Float,
	"R32_UINT":                  gputypes.TextureFormatR32Uint,
	"R32_SINT":                  gputypes.TextureFormatR32Sint,
	"R32_SFLOAT":                gputypes.TextureFormatR32Float,
	"R32G32_UINT":               gputypes.TextureFormatRG32Uint,
	"R32G32_SINT":               gputypes.TextureFormatRG32Sint,
	"R32G32_SFLOAT":             gputypes.TextureFormatRG32Float,
	"R32G32B32A32_UINT":         gputypes.TextureFormatRGBA32Uint,
	"R32G32B32A32_SINT":         gputypes.TextureFormatRGBA32Sint,
	"R32G32B32A32_SFLOAT":       gputypes.TextureFormatRGBA32Float,
	"A2B10G10R10_UNORM_PACK32":  gputypes.TextureFormatRGB10A2Unorm,
	"A2B10G10R10_UINT_PACK32":   gputypes.TextureFormatRGB10A2Uint,
	"B10G11R11_UFLOAT_PACK32":   gputypes.TextureFormatRG11B10Ufloat,
	"E5B9G9R9_UFLOAT_PACK32":    gputypes.TextureFormatRGB9E5Ufloat,
	"BC1_RGBA_UNORM_BLOCK":      gputypes.TextureFormatBC1RGBAUnorm,
	"BC1_RGBA_SRGB_BLOCK":       gputypes.TextureFormatBC1RGBAUnormSrgb,
	"BC2_UNORM_BLOCK":           gputypes.TextureFormatBC2RGBAUnorm,
	"BC2_SRGB_BLOCK":            gputypes.TextureFormatBC2RGBAUnormSrgb,
	"BC3_UNORM_BLOCK":           gputypes.TextureFormatBC3RGBAUnorm,
	"BC3_SRGB_BLOCK":            gputypes.TextureFormatBC3RGBAUnormSrgb,
	"BC4_UNORM_BLOCK":           gputypes.TextureFormatBC4RUnorm,
	"BC4_SNORM_BLOCK":           gputypes.TextureFormatBC4RSnorm,
	"BC5_UNORM_BLOCK":           gputypes.TextureFormatBC5RGUnorm,
	"BC5_SNORM_BLOCK":           gputypes.TextureFormatBC5RGSnorm,
	"BC6H_UFLOAT_BLOCK":         gputypes.TextureFormatBC6HRGBUfloat,
	"BC6H_SFLOAT_BLOCK":         gputypes.TextureFormatBC6HRGBFloat,
	"BC7_UNORM_BLOCK":           gputypes.TextureFormatBC7RGBAUnorm,
	"BC7_SRGB_BLOCK":            gputypes.TextureFormatBC7RGBAUnormSrgb,
	"ETC2_R8G8B8_UNORM_BLOCK":   gputypes.TextureFormatETC2RGB8Unorm,
	"ETC2_R8G8B8_SRGB_BLOCK":    gputypes.TextureFormatETC2RGB8UnormSrgb,
	"ETC2_R8G8B8A1_UNORM_BLOCK": gputypes.TextureFormatETC2RGB8A1Unorm,
	"ETC2_R8G8B8A1_SRGB_BLOCK":  gputypes.TextureFormatETC2RGB8A1UnormSrgb,
	"ETC2_R8G8B8A8_UNORM_BLOCK": gputypes.TextureFormatETC2RGBA8Unorm,
	"ETC2_R8G8B8A8_SRGB_BLOCK":  gputypes.TextureFormatETC2RGBA8UnormSrgb,
	"EAC_R11_UNORM_BLOCK":       gputypes.TextureFormatEACR11Unorm,
	"EAC_R11_SNORM_BLOCK":       gputypes.TextureFormatEACR11Snorm,
	"EAC_R11G11_UNORM_BLOCK":    gputypes.TextureFormatEACRG11Unorm,
	"EAC_R11G11_SNORM_BLOCK":    gputypes.TextureFormatEACRG11Snorm,
	"ASTC_4x4_UNORM_BLOCK":      gputypes.TextureFormatASTC4x4Unorm,
	"ASTC_4x4_SRGB_BLOCK":       gputypes.TextureFormatASTC4x4UnormSrgb,
	"ASTC_5x4_UNORM_BLOCK":      gputypes.TextureFormatASTC5x4Unorm,
	"ASTC_5x4_SRGB_BLOCK":       gputypes.TextureFormatASTC5x4UnormSrgb,
	"ASTC_5x5_UNORM_BLOCK":      gputypes.TextureFormatASTC5x5Unorm,
	"ASTC_5x5_SRGB_BLOCK":       gputypes.TextureFormatASTC5x5UnormSrgb,
	"ASTC_6x5_UNORM_BLOCK":      gputypes.TextureFormatASTC6x5Unorm,
	"ASTC_6x5_SRGB_BLOCK":       gputypes.TextureFormatASTC6x5UnormSrgb,
	"ASTC_6x6_UNORM_BLOCK":      gputypes.TextureFormatASTC6x6Unorm,
	"ASTC_6x6_SRGB_BLOCK":       gputypes.TextureFormatASTC6x6UnormSrgb,
	"ASTC_8x5_UNORM_BLOCK":      gputypes.TextureFormatASTC8x5Unorm,
	"ASTC_8x5_SRGB_BLOCK":       gputypes.TextureFormatASTC8x5UnormSrgb,
	"ASTC_8x6_UNORM_BLOCK":      gputypes.TextureFormatASTC8x6Unorm,
	"ASTC_8x6_SRGB_BLOCK":       gputypes.TextureFormatASTC8x6UnormSrgb,
	"ASTC_8x8_UNORM_BLOCK":      gputypes.TextureFormatASTC8x8Unorm,
	"ASTC_8x8_SRGB_BLOCK":       gputypes.TextureFormatASTC8x8UnormSrgb,
	"ASTC_10x5_UNORM_BLOCK":     gputypes.TextureFormatASTC10x5Unorm,
	"ASTC_10x5_SRGB_BLOCK":      gputypes.TextureFormatASTC10x5UnormSrgb,
	"ASTC_10x6_UNORM_BLOCK":     gputypes.TextureFormatASTC10x6Unorm,
	"ASTC_10x6_SRGB_BLOCK":      gputypes.TextureFormatASTC10x6UnormSrgb,
	"ASTC_10x8_UNORM_BLOCK":     gputypes.TextureFormatASTC10x8Unorm,
	"ASTC_10x8_SRGB_BLOCK":      gputypes.TextureFormatASTC10x8UnormSrgb,
	"ASTC_10x10_UNORM_BLOCK":    gputypes.TextureFormatASTC10x10Unorm,
	"ASTC_10x10_SRGB_BLOCK":     gputypes.TextureFormatASTC10x10UnormSrgb,
	"ASTC_12x10_UNORM_BLOCK":    gputypes.TextureFormatASTC12x10Unorm,
	"ASTC_12x10_SRGB_BLOCK":     gputypes.TextureFormatASTC12x10UnormSrgb,
	"ASTC_12x12_UNORM_BLOCK":    gputypes.TextureFormatASTC12x12Unorm,
	"ASTC_12x12_SRGB_BLOCK":     gputypes.TextureFormatASTC12x12UnormSrgb,
}
