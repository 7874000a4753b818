package mdx

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// Tag identifies a chunk, a sub-block, or a fixed marker within the format. On
// the wire, a tag is a four-character ASCII code read as a little-endian u32.
type Tag uint32

// Tags known to the format. The value of each tag is its name read as a
// little-endian u32.
const (
	TagMDLX Tag = 1481393229 // File magic.

	// Chunks.
	TagVERS Tag = 1397900630
	TagMODL Tag = 1279545165
	TagSEQS Tag = 1397835091
	TagGLBS Tag = 1396853831
	TagTEXS Tag = 1398293844
	TagTXAN Tag = 1312905300
	TagGEOS Tag = 1397704007
	TagGEOA Tag = 1095714119
	TagBONE Tag = 1162760002
	TagLITE Tag = 1163151692
	TagHELP Tag = 1347175752
	TagATCH Tag = 1212372033
	TagPIVT Tag = 1414941008
	TagPREM Tag = 1296388688
	TagPRE2 Tag = 843403856
	TagRIBB Tag = 1111640402
	TagEVTS Tag = 1398036037
	TagCAMS Tag = 1397571907
	TagCLID Tag = 1145654339
	TagMTLS Tag = 1397511245

	// Node transforms.
	TagKGTR Tag = 1381254987
	TagKGRT Tag = 1414678347
	TagKGSC Tag = 1129531211

	// Material layers.
	TagLAYS Tag = 1398358348
	TagKMTF Tag = 1179929931
	TagKMTA Tag = 1096043851
	TagKMTE Tag = 1163152715
	TagKFC3 Tag = 860046923
	TagKFCA Tag = 1094927947
	TagKFTC Tag = 1129596491

	// Texture animations.
	TagKTAT Tag = 1413567563
	TagKTAR Tag = 1380013131
	TagKTAS Tag = 1396790347

	// Geoset animations.
	TagKGAO Tag = 1329678155
	TagKGAC Tag = 1128351563

	// Lights.
	TagKLAS Tag = 1396788299
	TagKLAE Tag = 1161907275
	TagKLAC Tag = 1128352843
	TagKLAI Tag = 1229016139
	TagKLBI Tag = 1229081675
	TagKLBC Tag = 1128418379
	TagKLAV Tag = 1447119947

	// Attachments.
	TagKATV Tag = 1448362315

	// Particle emitters.
	TagKPEE Tag = 1162170443
	TagKPEG Tag = 1195724875
	TagKPLN Tag = 1313624139
	TagKPLT Tag = 1414287435
	TagKPEL Tag = 1279610955
	TagKPES Tag = 1397051467
	TagKPEV Tag = 1447383115

	// Particle emitters (version 2).
	TagKP2E Tag = 1160925259
	TagKP2G Tag = 1194479691
	TagKP2L Tag = 1278365771
	TagKP2S Tag = 1395806283
	TagKP2V Tag = 1446137931
	TagKP2R Tag = 1379029067
	TagKP2N Tag = 1311920203
	TagKP2W Tag = 1462915147

	// Ribbon emitters.
	TagKRVS Tag = 1398166091
	TagKRHA Tag = 1095258699
	TagKRHB Tag = 1112035915
	TagKRAL Tag = 1279349323
	TagKRCO Tag = 1329812043
	TagKRTX Tag = 1481921099

	// Cameras.
	TagKCTR Tag = 1381253963
	TagKCRL Tag = 1280459595
	TagKTTR Tag = 1381258315

	// Event objects.
	TagKEVT Tag = 1414939979

	// Corn emitters. These belong to later format versions and have no
	// record here.
	TagKPPA Tag = 1095782475
	TagKPPC Tag = 1129336907
	TagKPPE Tag = 1162891339
	TagKPPL Tag = 1280331851
	TagKPPS Tag = 1397772363
	TagKPPV Tag = 1448104011

	// Geoset sections.
	TagVRTX Tag = 1481921110
	TagNRMS Tag = 1397576270
	TagPTYP Tag = 1348031568
	TagPCNT Tag = 1414415184
	TagPVTX Tag = 1481922128
	TagGNDX Tag = 1480871495
	TagMTGC Tag = 1128748109
	TagMATS Tag = 1398030669
	TagUVAS Tag = 1396790869
	TagUVBS Tag = 1396856405
)

// ChunkTags lists the chunk tags in the order chunks are encoded.
var ChunkTags = []Tag{
	TagVERS, TagMODL, TagSEQS, TagGLBS, TagTEXS, TagTXAN, TagGEOS, TagGEOA,
	TagBONE, TagLITE, TagHELP, TagATCH, TagPIVT, TagPREM, TagPRE2, TagRIBB,
	TagEVTS, TagCAMS, TagCLID, TagMTLS,
}

var knownTags = []Tag{
	TagMDLX,
	TagVERS, TagMODL, TagSEQS, TagGLBS, TagTEXS, TagTXAN, TagGEOS, TagGEOA,
	TagBONE, TagLITE, TagHELP, TagATCH, TagPIVT, TagPREM, TagPRE2, TagRIBB,
	TagEVTS, TagCAMS, TagCLID, TagMTLS,
	TagKGTR, TagKGRT, TagKGSC,
	TagLAYS, TagKMTF, TagKMTA, TagKMTE, TagKFC3, TagKFCA, TagKFTC,
	TagKTAT, TagKTAR, TagKTAS,
	TagKGAO, TagKGAC,
	TagKLAS, TagKLAE, TagKLAC, TagKLAI, TagKLBI, TagKLBC, TagKLAV,
	TagKATV,
	TagKPEE, TagKPEG, TagKPLN, TagKPLT, TagKPEL, TagKPES, TagKPEV,
	TagKP2E, TagKP2G, TagKP2L, TagKP2S, TagKP2V, TagKP2R, TagKP2N, TagKP2W,
	TagKRVS, TagKRHA, TagKRHB, TagKRAL, TagKRCO, TagKRTX,
	TagKCTR, TagKCRL, TagKTTR,
	TagKEVT,
	TagKPPA, TagKPPC, TagKPPE, TagKPPL, TagKPPS, TagKPPV,
	TagVRTX, TagNRMS, TagPTYP, TagPCNT, TagPVTX, TagGNDX, TagMTGC, TagMATS,
	TagUVAS, TagUVBS,
}

var (
	tagToName = map[Tag]string{}
	nameToTag = map[string]Tag{}
)

func init() {
	for _, t := range knownTags {
		name := string(t.Bytes())
		tagToName[t] = name
		nameToTag[name] = t
	}
}

// TagOf returns the tag formed by the four bytes of name. It does not check
// whether the tag is known.
func TagOf(name string) Tag {
	var b [4]byte
	copy(b[:], name)
	return Tag(binary.LittleEndian.Uint32(b[:]))
}

// ParseTag returns the known tag with the given four-character name.
func ParseTag(name string) (t Tag, ok bool) {
	t, ok = nameToTag[name]
	return t, ok
}

// Bytes returns the four bytes of the tag as they appear on the wire.
func (t Tag) Bytes() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(t))
	return b
}

// Known returns whether the tag is part of the format.
func (t Tag) Known() bool {
	_, ok := tagToName[t]
	return ok
}

// IsChunk returns whether the tag identifies a top-level chunk.
func (t Tag) IsChunk() bool {
	for _, c := range ChunkTags {
		if c == t {
			return true
		}
	}
	return false
}

// String returns the name of the tag. Tags that are not printable ASCII are
// formatted as hexadecimal.
func (t Tag) String() string {
	if name, ok := tagToName[t]; ok {
		return name
	}
	b := t.Bytes()
	for _, c := range b {
		if c < 32 || c > 126 {
			return fmt.Sprintf("0x%08X", uint32(t))
		}
	}
	return string(b)
}

// GoString returns the tag as a quoted name.
func (t Tag) GoString() string {
	return strconv.Quote(t.String())
}

// MarshalText encodes the tag as its four-character name.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a four-character name or a hexadecimal value produced
// by MarshalText.
func (t *Tag) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) == 4 {
		*t = TagOf(s)
		return nil
	}
	if len(s) == 10 && s[:2] == "0x" {
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return fmt.Errorf("invalid tag %q: %w", s, err)
		}
		*t = Tag(v)
		return nil
	}
	return fmt.Errorf("invalid tag %q", s)
}
