package compare

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest() Request {
	return Request{
		OutputPrefix: "/out/varsim_compare_results",
		TruthVCF:     "/data/truth.vcf",
		Reference:    "/data/ref.fa",
		CallVCFs:     []string{"/data/calls.vcf"},
	}
}

func TestVarSimArgs(t *testing.T) {
	mandatory := []string{
		"java", "-jar", "/opt/varsim/VarSim.jar", "vcfcompare",
		"-prefix", "/out/varsim_compare_results",
		"-true_vcf", "/data/truth.vcf",
		"-reference", "/data/ref.fa",
	}

	tests := []struct {
		name   string
		modify func(*Request)
		want   []string
	}{
		{
			name:   "mandatory only",
			modify: func(*Request) {},
			want:   append(append([]string(nil), mandatory...), "/data/calls.vcf"),
		},
		{
			name: "exclude filtered with sample",
			modify: func(r *Request) {
				r.ExcludeFiltered = true
				r.Sample = "S1"
			},
			want: append(append([]string(nil), mandatory...), "-exclude_filtered", "-sample", "S1", "/data/calls.vcf"),
		},
		{
			name: "all flags",
			modify: func(r *Request) {
				r.ExcludeFiltered = true
				r.MatchGenotype = true
				r.Sample = "NA12878"
			},
			want: append(append([]string(nil), mandatory...),
				"-exclude_filtered", "-match_geno", "-sample", "NA12878", "/data/calls.vcf"),
		},
	}

	s := NewVarSimStrategy(testEngines(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.modify(&req)
			args := s.Args(req)
			assert.Equal(t, tt.want, args)
			if !req.MatchGenotype {
				assert.NotContains(t, args, "-match_geno")
			}
		})
	}
}

func TestVarSimArgs_CustomJava(t *testing.T) {
	s := NewVarSimStrategy(Engines{Java: "/usr/lib/jvm/bin/java", VarSimJar: "VarSim.jar"}, nil)
	args := s.Args(baseRequest())
	assert.Equal(t, []string{"/usr/lib/jvm/bin/java", "-jar", "VarSim.jar", "vcfcompare"}, args[:4])
}

func TestVcfEvalArgs(t *testing.T) {
	s := NewVcfEvalStrategy(testEngines(), nil)

	req := baseRequest()
	req.PreparedReference = "/data/ref.fa.sdf"
	assert.Equal(t, []string{
		"java", "-jar", "/opt/rtg/RTG.jar", "vcfeval",
		"--baseline", "/data/truth.vcf",
		"--calls", "/data/calls.vcf",
		"--output", "/out/varsim_compare_results_vcfeval",
		"--template", "/data/ref.fa.sdf",
		"--all-records", "--squash-ploidy",
	}, s.Args(req))

	req.ExcludeFiltered = true
	req.MatchGenotype = true
	req.Sample = "S1"
	args := s.Args(req)
	assert.NotContains(t, args, "--all-records")
	assert.NotContains(t, args, "--squash-ploidy")
	assert.Equal(t, []string{"--sample", "S1"}, args[len(args)-2:])
}

func TestVcfEvalCompare(t *testing.T) {
	req := testRequest(t)
	req.PreparedReference = "/data/ref.fa.sdf"
	s := NewVcfEvalStrategy(testEngines(), nil)
	dir := s.OutputDir(req)
	runner := &fakeRunner{creates: []string{
		filepath.Join(dir, "tp.vcf.gz"),
		filepath.Join(dir, "fn.vcf.gz"),
		filepath.Join(dir, "fp.vcf.gz"),
	}}
	s.runner = runner

	c := NewComparator(s, req)
	a, err := c.Artifacts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tp.vcf.gz"), a.TruePositives)
	assert.Len(t, runner.calls, 1)
}

func TestVcfEvalCompare_RequiresSDF(t *testing.T) {
	runner := &fakeRunner{}
	s := NewVcfEvalStrategy(testEngines(), runner)
	_, err := s.Compare(context.Background(), testRequest(t))
	require.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestNewStrategy(t *testing.T) {
	s, err := NewStrategy("vcfcompare", testEngines(), nil)
	require.NoError(t, err)
	assert.Equal(t, EngineVcfCompare, s.Name())
	assert.False(t, s.RequiresPreparedReference())

	s, err = NewStrategy("VCFEVAL", testEngines(), nil)
	require.NoError(t, err)
	assert.Equal(t, EngineVcfEval, s.Name())
	assert.True(t, s.RequiresPreparedReference())

	_, err = NewStrategy("happy", testEngines(), nil)
	assert.True(t, errors.Is(err, ErrUnknownEngine))

	_, err = NewStrategy("vcfcompare", Engines{}, nil)
	assert.ErrorContains(t, err, "engines.varsim_jar")
}
