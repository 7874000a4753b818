package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	jsoniter "github.com/json-iterator/go"
	"github.com/mdxapi/mdxfile"
	"github.com/mdxapi/mdxfile/errors"
	"github.com/mdxapi/mdxfile/internal/logger"
	"github.com/mdxapi/mdxfile/mdx"
)

// ChunkStats describes one chunk of a file.
type ChunkStats struct {
	Tag     mdx.Tag
	Size    int
	Records int
}

// Stats describes a file.
type Stats struct {
	File string

	// Size of the MDX data.
	Size int

	// Codec and size of the file, if packed.
	Codec      string `json:",omitempty"`
	PackedSize int    `json:",omitempty"`

	Digest  string
	Version uint32
	Name    string

	Chunks []ChunkStats

	// Number of nodes overall.
	NodeCount int

	// Number of nodes per kind.
	NodeKinds map[string]int `json:",omitempty"`

	VertexCount   int
	TriangleCount int

	// Number of animated transforms, and of tracks among them.
	TransformCount int
	TrackCount     int

	// Largest transforms by number of tracks.
	LargestTransforms TransformLens `json:",omitempty"`

	Warnings []string `json:",omitempty"`
}

// TransformLen locates a transform and counts its tracks.
type TransformLen struct {
	Object string
	Tag    mdx.Tag
	Length int
}

func (t TransformLen) String() string {
	return fmt.Sprintf("%s.%s(%d)", t.Object, t.Tag, t.Length)
}

// TransformLens is a list of transforms that keeps only the largest when
// encoded.
type TransformLens []TransformLen

func (t TransformLens) MarshalJSON() ([]byte, error) {
	list := append(TransformLens{}, t...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Length > list[j].Length
	})
	if len(list) > 10 {
		list = list[:10]
	}
	type plain TransformLens
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(plain(list))
}

// records returns the number of records in c.
func records(c mdx.Chunk) int {
	switch c := c.(type) {
	case *mdx.SequenceChunk:
		return len(c.Sequences)
	case *mdx.GlobalSequenceChunk:
		return len(c.Durations)
	case *mdx.TextureChunk:
		return len(c.Textures)
	case *mdx.TextureAnimationChunk:
		return len(c.Animations)
	case *mdx.GeosetChunk:
		return len(c.Geosets)
	case *mdx.GeosetAnimationChunk:
		return len(c.Animations)
	case *mdx.BoneChunk:
		return len(c.Bones)
	case *mdx.LightChunk:
		return len(c.Lights)
	case *mdx.HelperChunk:
		return len(c.Helpers)
	case *mdx.AttachmentChunk:
		return len(c.Attachments)
	case *mdx.PivotPointChunk:
		return len(c.Points)
	case *mdx.ParticleEmitterChunk:
		return len(c.Emitters)
	case *mdx.ParticleEmitter2Chunk:
		return len(c.Emitters)
	case *mdx.RibbonEmitterChunk:
		return len(c.Emitters)
	case *mdx.EventObjectChunk:
		return len(c.Events)
	case *mdx.CameraChunk:
		return len(c.Cameras)
	case *mdx.CollisionShapeChunk:
		return len(c.Shapes)
	case *mdx.MaterialChunk:
		return len(c.Materials)
	}
	return 1
}

// walkNodes calls cb with the kind and header of each node of m.
func walkNodes(m *mdx.Model, cb func(kind string, n *mdx.Node)) {
	if m.Bones != nil {
		for i := range m.Bones.Bones {
			cb("Bone", &m.Bones.Bones[i].Node)
		}
	}
	if m.Lights != nil {
		for i := range m.Lights.Lights {
			cb("Light", &m.Lights.Lights[i].Node)
		}
	}
	if m.Helpers != nil {
		for i := range m.Helpers.Helpers {
			cb("Helper", &m.Helpers.Helpers[i].Node)
		}
	}
	if m.Attachments != nil {
		for i := range m.Attachments.Attachments {
			cb("Attachment", &m.Attachments.Attachments[i].Node)
		}
	}
	if m.ParticleEmitters != nil {
		for i := range m.ParticleEmitters.Emitters {
			cb("ParticleEmitter", &m.ParticleEmitters.Emitters[i].Node)
		}
	}
	if m.ParticleEmitters2 != nil {
		for i := range m.ParticleEmitters2.Emitters {
			cb("ParticleEmitter2", &m.ParticleEmitters2.Emitters[i].Node)
		}
	}
	if m.RibbonEmitters != nil {
		for i := range m.RibbonEmitters.Emitters {
			cb("RibbonEmitter", &m.RibbonEmitters.Emitters[i].Node)
		}
	}
	if m.EventObjects != nil {
		for i := range m.EventObjects.Events {
			cb("EventObject", &m.EventObjects.Events[i].Node)
		}
	}
	if m.CollisionShapes != nil {
		for i := range m.CollisionShapes.Shapes {
			cb("CollisionShape", &m.CollisionShapes.Shapes[i].Node)
		}
	}
}

// Fill sets the statistics of s derived from m.
func (s *Stats) Fill(m *mdx.Model) {
	if m == nil {
		return
	}
	if m.Version != nil {
		s.Version = m.Version.Version
	}
	if m.Model != nil {
		s.Name = m.Model.Name
	}

	s.Chunks = s.Chunks[:0]
	for _, c := range m.Chunks() {
		s.Chunks = append(s.Chunks, ChunkStats{Tag: c.Tag(), Size: c.Size(), Records: records(c)})
	}

	s.NodeCount = 0
	s.NodeKinds = map[string]int{}
	s.TransformCount = 0
	s.TrackCount = 0
	s.LargestTransforms = nil
	walkNodes(m, func(kind string, n *mdx.Node) {
		s.NodeCount++
		s.NodeKinds[kind]++
		add := func(t mdx.Tag, tracks int) {
			s.TransformCount++
			s.TrackCount += tracks
			s.LargestTransforms = append(s.LargestTransforms, TransformLen{Object: n.Name, Tag: t, Length: tracks})
		}
		if n.Translation != nil {
			add(mdx.TagKGTR, len(n.Translation.Tracks))
		}
		if n.Rotation != nil {
			add(mdx.TagKGRT, len(n.Rotation.Tracks))
		}
		if n.Scaling != nil {
			add(mdx.TagKGSC, len(n.Scaling.Tracks))
		}
	})

	s.VertexCount = 0
	s.TriangleCount = 0
	if m.Geosets != nil {
		for _, g := range m.Geosets.Geosets {
			s.VertexCount += len(g.Vertices)
			s.TriangleCount += len(g.Faces)
		}
	}
}

// write writes s in a readable form.
func (s *Stats) write(w io.Writer) {
	fmt.Fprintf(w, "%s: %q, version %d\n", s.File, s.Name, s.Version)
	if s.Codec != "" {
		fmt.Fprintf(w, "\tsize: %s (packed %s with %s)\n", humanize.IBytes(uint64(s.Size)), humanize.IBytes(uint64(s.PackedSize)), s.Codec)
	} else {
		fmt.Fprintf(w, "\tsize: %s\n", humanize.IBytes(uint64(s.Size)))
	}
	fmt.Fprintf(w, "\tdigest: %s\n", s.Digest)
	fmt.Fprintf(w, "\tnodes: %s, transforms: %s, tracks: %s\n",
		humanize.Comma(int64(s.NodeCount)),
		humanize.Comma(int64(s.TransformCount)),
		humanize.Comma(int64(s.TrackCount)),
	)
	fmt.Fprintf(w, "\tvertices: %s, triangles: %s\n",
		humanize.Comma(int64(s.VertexCount)),
		humanize.Comma(int64(s.TriangleCount)),
	)
	for _, c := range s.Chunks {
		fmt.Fprintf(w, "\t%s: %d records, %s\n", c.Tag, c.Records, humanize.IBytes(uint64(c.Size)))
	}
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "\twarning: %s\n", warn)
	}
}

////////////////////////////////////////////////////////////////

// statCommand displays statistics for files.
type statCommand struct {
	g     *globals
	files []string
	json  bool
}

func (cmd *statCommand) stat(path string) (*Stats, error) {
	data, raw, err := cmd.g.readData(path)
	if err != nil {
		return nil, err
	}
	s := &Stats{File: path, Size: len(data)}
	if mdxfile.IsPacked(raw) {
		s.Codec = packedCodec(raw).String()
		s.PackedSize = len(raw)
	}
	s.Digest = mdxfile.Digest(data).String()

	m, warn, err := mdx.Decoder{Logger: logger.Log}.Decode(data)
	if err != nil {
		return nil, errors.FileError{Path: path, Cause: err}
	}
	if errs, ok := warn.(errors.Errors); ok {
		for _, w := range errs {
			s.Warnings = append(s.Warnings, w.Error())
		}
	} else if warn != nil {
		s.Warnings = append(s.Warnings, warn.Error())
	}
	s.Fill(m)
	return s, nil
}

func (cmd *statCommand) run(*kingpin.ParseContext) error {
	var errs errors.Errors
	var list []*Stats
	for _, path := range cmd.files {
		s, err := cmd.stat(path)
		if err != nil {
			errs = errs.Append(err)
			continue
		}
		list = append(list, s)
	}
	if cmd.json {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.g.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return err
		}
	} else {
		for _, s := range list {
			s.write(cmd.g.stdout)
		}
	}
	return errs.Return()
}

func addStatCommand(app *kingpin.Application, g *globals) {
	cmd := &statCommand{g: g}
	c := app.Command("stat", "Display statistics for files.").Action(cmd.run)
	c.Flag("json", "Write statistics as JSON.").BoolVar(&cmd.json)
	c.Arg("files", "The files to read.").Required().StringsVar(&cmd.files)
}
