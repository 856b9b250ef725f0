package gpu

import (
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/vkfft-go/sys"
	"github.com/cwbudde/vkfft-go/vk"
)

// MockEngineVersion is what MockEngine.Version reports (VkFFT 1.3.4).
const MockEngineVersion = 10304

// MockEngineStats counts engine calls.
type MockEngineStats struct {
	Applications int
	Initialized  int
	Appends      int
	Deletes      int
}

// MockEngine is a CPU implementation of the VkFFT engine ABI. Transforms are
// recorded into MockBackend command buffers and computed with gonum when the
// command buffer is submitted.
//
// It covers single and double precision complex and real-to-complex
// transforms in up to three dimensions with batches, coordinate features,
// normalization and scalar convolution. Half precision, DCT, DST and matrix
// convolution are rejected at initialization.
type MockEngine struct {
	backend *MockBackend

	mu          sync.Mutex
	stats       MockEngineStats
	initFailure sys.Result
	appFailure  sys.Result
}

// NewMockEngine returns an engine that records into backend.
func NewMockEngine(backend *MockBackend) *MockEngine {
	return &MockEngine{backend: backend}
}

func (e *MockEngine) Version() int { return MockEngineVersion }

// Stats returns a snapshot of the call counters.
func (e *MockEngine) Stats() MockEngineStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// FailInitialize makes every Initialize return r until cleared with
// sys.Success.
func (e *MockEngine) FailInitialize(r sys.Result) {
	e.mu.Lock()
	e.initFailure = r
	e.mu.Unlock()
}

// FailAppend makes every Append return r until cleared with sys.Success.
func (e *MockEngine) FailAppend(r sys.Result) {
	e.mu.Lock()
	e.appFailure = r
	e.mu.Unlock()
}

func (e *MockEngine) NewApplication() (sys.Application, error) {
	e.mu.Lock()
	e.stats.Applications++
	e.mu.Unlock()
	return &mockApplication{engine: e}, nil
}

type mockApplication struct {
	engine  *MockEngine
	cfg     sys.Configuration
	ready   bool
	deleted bool
}

func (a *mockApplication) Initialize(cfg *sys.Configuration) sys.Result {
	e := a.engine
	e.mu.Lock()
	fail := e.initFailure
	e.mu.Unlock()
	if fail != sys.Success {
		return fail
	}
	if cfg == nil {
		return sys.ErrorEmptyApplication
	}
	if r := e.validate(cfg); r != sys.Success {
		return r
	}

	// The engine keeps a copy of the configuration; its pointers keep
	// referring to the caller's record.
	a.cfg = *cfg
	a.ready = true

	e.mu.Lock()
	e.stats.Initialized++
	e.mu.Unlock()
	return sys.Success
}

func (e *MockEngine) validate(cfg *sys.Configuration) sys.Result {
	b := e.backend
	switch {
	case cfg.PhysicalDevice == nil || !b.HasPhysicalDevice(*cfg.PhysicalDevice):
		return sys.ErrorInvalidPhysicalDevice
	case cfg.Device == nil || !b.HasDevice(*cfg.Device):
		return sys.ErrorInvalidDevice
	case cfg.Queue == nil || !b.HasQueue(*cfg.Queue):
		return sys.ErrorInvalidQueue
	case cfg.CommandPool == nil || !b.HasCommandPool(*cfg.CommandPool):
		return sys.ErrorInvalidCommandPool
	case cfg.Fence == nil || !b.HasFence(*cfg.Fence):
		return sys.ErrorInvalidFence
	}

	if cfg.FFTDim == 0 || cfg.FFTDim > 3 {
		return sys.ErrorEmptyFFTDim
	}
	for i := range cfg.FFTDim {
		if cfg.Size[i] == 0 {
			return sys.ErrorEmptySize
		}
	}
	if cfg.PerformR2C != 0 && cfg.Size[0]%2 != 0 {
		return sys.ErrorUnsupportedR2COmit
	}

	switch {
	case cfg.HalfPrecision != 0 || cfg.HalfPrecisionMemoryOnly != 0:
		return sys.ErrorUnsupportedFFTLength
	case cfg.PerformDCT != 0 || cfg.PerformDST != 0:
		return sys.ErrorUnsupportedDCT
	case cfg.MatrixConvolution > 1:
		return sys.ErrorUnsupportedFFTLength
	}

	switch {
	case cfg.BufferSize == nil:
		return sys.ErrorEmptyBufferSize
	case cfg.UserTempBuffer != 0 && cfg.TempBufferSize == nil:
		return sys.ErrorEmptyTempBufferSize
	case cfg.IsInputFormatted != 0 && cfg.InputBufferSize == nil:
		return sys.ErrorEmptyInputBufferSize
	case cfg.IsOutputFormatted != 0 && cfg.OutputBufferSize == nil:
		return sys.ErrorEmptyOutputBufferSize
	case cfg.PerformConvolution != 0 && cfg.KernelSize == nil:
		return sys.ErrorEmptyKernelSize
	}
	return sys.Success
}

func (a *mockApplication) Append(dir sys.Direction, params *sys.LaunchParams) sys.Result {
	e := a.engine
	e.mu.Lock()
	fail := e.appFailure
	e.mu.Unlock()
	if fail != sys.Success {
		return fail
	}
	if !a.ready || a.deleted {
		return sys.ErrorEmptyApplication
	}
	if params == nil || params.CommandBuffer == nil || *params.CommandBuffer == 0 {
		return sys.ErrorEmptyLaunchParams
	}

	job, r := a.plan(dir, params)
	if r != sys.Success {
		return r
	}
	if err := e.backend.Record(*params.CommandBuffer, job.run); err != nil {
		return sys.ErrorFailedToBeginCommandBuffer
	}

	e.mu.Lock()
	e.stats.Appends++
	e.mu.Unlock()
	return sys.Success
}

func (a *mockApplication) Delete() {
	if a.deleted {
		return
	}
	a.deleted = true
	a.ready = false
	e := a.engine
	e.mu.Lock()
	e.stats.Deletes++
	e.mu.Unlock()
}

// resolve picks the launch override for a role, falling back to the handle
// stored behind the configuration pointer.
func (a *mockApplication) resolve(override, configured *vk.Buffer) *MockBuffer {
	var h vk.Buffer
	switch {
	case override != nil:
		h = *override
	case configured != nil:
		h = *configured
	default:
		return nil
	}
	buf, ok := a.engine.backend.Buffer(h)
	if !ok {
		return nil
	}
	return buf
}

// plan resolves buffers and layouts for one append.
func (a *mockApplication) plan(dir sys.Direction, params *sys.LaunchParams) (*mockJob, sys.Result) {
	cfg := &a.cfg

	g := grid{nx: 1, ny: 1, nz: 1}
	dims := []*int{&g.nx, &g.ny, &g.nz}
	for i := range cfg.FFTDim {
		*dims[i] = int(cfg.Size[i])
	}

	job := &mockJob{
		grid:      g,
		double:    cfg.DoublePrecision != 0,
		r2c:       cfg.PerformR2C != 0,
		normalize: cfg.Normalize != 0,
		inverse:   dir == sys.Inverse,
		convolve:  cfg.PerformConvolution != 0 && dir == sys.Forward,
		systems:   int(max(cfg.NumberBatches, 1) * max(cfg.CoordinateFeatures, 1)),
	}

	buffer := a.resolve(params.Buffer, cfg.Buffer)
	if buffer == nil {
		return nil, sys.ErrorEmptyBuffer
	}
	input := a.resolve(params.InputBuffer, cfg.InputBuffer)
	output := a.resolve(params.OutputBuffer, cfg.OutputBuffer)

	spectrum := job.spectrumLayout()
	inFormatted := cfg.IsInputFormatted != 0 && input != nil
	outFormatted := cfg.IsOutputFormatted != 0 && output != nil

	// Forward: input (formatted) or buffer -> buffer.
	// Inverse: buffer -> input (return to input), output (formatted) or buffer.
	job.src = view{buf: buffer, layout: spectrum}
	if !job.inverse {
		job.src = view{buf: buffer, layout: job.spaceLayout(false)}
		if inFormatted {
			job.src = view{buf: input, layout: job.spaceLayout(true)}
		}
		job.dst = view{buf: buffer, layout: spectrum}
	}
	if job.inverse || job.convolve {
		switch {
		case cfg.InverseReturnToInputBuffer != 0 && input != nil:
			job.dst = view{buf: input, layout: job.spaceLayout(cfg.IsInputFormatted != 0)}
		case outFormatted:
			job.dst = view{buf: output, layout: job.spaceLayout(true)}
		default:
			job.dst = view{buf: buffer, layout: job.spaceLayout(false)}
		}
	}

	if !job.src.fits(job.systems, job.double) {
		return nil, sizeCode(job.src.buf, buffer, input)
	}
	if !job.dst.fits(job.systems, job.double) {
		return nil, sizeCode(job.dst.buf, buffer, input)
	}

	if job.convolve {
		kernel := a.resolve(params.Kernel, cfg.Kernel)
		if kernel == nil {
			return nil, sys.ErrorEmptyKernel
		}
		job.kernel = view{buf: kernel, layout: spectrum}
		if !job.kernel.fits(1, job.double) {
			return nil, sys.ErrorEmptyKernelSize
		}
	}
	return job, sys.Success
}

func sizeCode(buf, buffer, input *MockBuffer) sys.Result {
	switch buf {
	case buffer:
		return sys.ErrorEmptyBufferSize
	case input:
		return sys.ErrorEmptyInputBufferSize
	default:
		return sys.ErrorEmptyOutputBufferSize
	}
}

type grid struct {
	nx, ny, nz int
}

func (g grid) points() int { return g.nx * g.ny * g.nz }
func (g grid) rows() int   { return g.ny * g.nz }

// layout describes how one system is stored, in scalars.
type layout struct {
	complex   bool
	rowLen    int
	rowStride int
	rows      int
}

func (l layout) systemStride() int { return l.rowStride * l.rows }

type view struct {
	buf    *MockBuffer
	layout layout
}

func (v view) fits(systems int, double bool) bool {
	scalar := 4
	if double {
		scalar = 8
	}
	return uint64(v.layout.systemStride()*systems*scalar) <= v.buf.Size()
}

type mockJob struct {
	grid
	double    bool
	r2c       bool
	normalize bool
	inverse   bool
	convolve  bool
	systems   int

	src, dst, kernel view

	ffts map[int]*fourier.CmplxFFT
}

// spectrumWidth is the number of complex values stored per x row in the
// frequency domain.
func (j *mockJob) spectrumWidth() int {
	if j.r2c {
		return j.nx/2 + 1
	}
	return j.nx
}

func (j *mockJob) spectrumLayout() layout {
	w := j.spectrumWidth()
	return layout{complex: true, rowLen: w, rowStride: 2 * w, rows: j.rows()}
}

// spaceLayout is the spatial domain layout. Unformatted real data is padded
// to the spectrum row stride so the transform can run in place.
func (j *mockJob) spaceLayout(formatted bool) layout {
	if !j.r2c {
		return layout{complex: true, rowLen: j.nx, rowStride: 2 * j.nx, rows: j.rows()}
	}
	stride := j.nx
	if !formatted {
		stride = 2 * (j.nx/2 + 1)
	}
	return layout{rowLen: j.nx, rowStride: stride, rows: j.rows()}
}

func (j *mockJob) scalarSize() int {
	if j.double {
		return 8
	}
	return 4
}

// run executes the job. Every system is read completely before anything is
// written, so views that share a buffer are safe.
func (j *mockJob) run() {
	j.ffts = make(map[int]*fourier.CmplxFFT)
	kernelSystems := 1
	if j.convolve {
		kernelSystems = max(int(j.kernel.buf.Size())/(j.kernel.layout.systemStride()*j.scalarSize()), 1)
	}

	for s := range j.systems {
		if j.inverse {
			j.store(j.dst, s, j.toSpatial(j.load(j.src, s)))
			continue
		}
		freq := j.toSpectrum(j.load(j.src, s))
		if !j.convolve {
			j.store(j.dst, s, freq)
			continue
		}
		kern := j.load(j.kernel, s%kernelSystems)
		for i := range freq {
			freq[i] *= kern[i]
		}
		j.store(j.dst, s, j.toSpatial(freq))
	}
}

// load reads system s of v as rowLen values per row.
func (j *mockJob) load(v view, s int) []complex128 {
	l := v.layout
	out := make([]complex128, l.rowLen*l.rows)
	base := s * l.systemStride()
	for r := range l.rows {
		off := base + r*l.rowStride
		for x := range l.rowLen {
			if l.complex {
				out[r*l.rowLen+x] = complex(j.get(v.buf, off+2*x), j.get(v.buf, off+2*x+1))
			} else {
				out[r*l.rowLen+x] = complex(j.get(v.buf, off+x), 0)
			}
		}
	}
	return out
}

// store writes data (rowLen values per row) into system s of v. Real layouts
// keep only the real part.
func (j *mockJob) store(v view, s int, data []complex128) {
	l := v.layout
	base := s * l.systemStride()
	for r := range l.rows {
		off := base + r*l.rowStride
		for x := range l.rowLen {
			c := data[r*l.rowLen+x]
			if l.complex {
				j.set(v.buf, off+2*x, real(c))
				j.set(v.buf, off+2*x+1, imag(c))
			} else {
				j.set(v.buf, off+x, real(c))
			}
		}
	}
}

func (j *mockJob) get(buf *MockBuffer, i int) float64 {
	if j.double {
		return buf.Float64s()[i]
	}
	return float64(buf.Float32s()[i])
}

func (j *mockJob) set(buf *MockBuffer, i int, v float64) {
	if j.double {
		buf.Float64s()[i] = v
		return
	}
	buf.Float32s()[i] = float32(v)
}

// toSpectrum transforms nx values per row into spectrumWidth values per row.
func (j *mockJob) toSpectrum(spatial []complex128) []complex128 {
	w := j.spectrumWidth()
	freq := make([]complex128, w*j.rows())
	for r := range j.rows() {
		row := spatial[r*j.nx : (r+1)*j.nx]
		j.transform(row, false)
		copy(freq[r*w:(r+1)*w], row[:w])
	}
	j.columns(freq, w, false)
	return freq
}

// toSpatial inverts a spectrum back to nx values per row. Real transforms
// rebuild the upper half of every row from its Hermitian symmetry.
func (j *mockJob) toSpatial(freq []complex128) []complex128 {
	w := j.spectrumWidth()
	j.columns(freq, w, true)

	spatial := make([]complex128, j.nx*j.rows())
	for r := range j.rows() {
		row := spatial[r*j.nx : (r+1)*j.nx]
		copy(row, freq[r*w:(r+1)*w])
		if j.r2c {
			for k := w; k < j.nx; k++ {
				row[k] = cmplx.Conj(row[j.nx-k])
			}
		}
		j.transform(row, true)
	}

	if j.normalize {
		scale := complex(1/float64(j.points()), 0)
		for i := range spatial {
			spatial[i] *= scale
		}
	}
	return spatial
}

// columns transforms along y and z for a grid w values wide.
func (j *mockJob) columns(data []complex128, w int, inverse bool) {
	if j.ny > 1 {
		for z := range j.nz {
			for x := range w {
				j.strided(data, z*j.ny*w+x, w, j.ny, inverse)
			}
		}
	}
	if j.nz > 1 {
		for y := range j.ny {
			for x := range w {
				j.strided(data, y*w+x, w*j.ny, j.nz, inverse)
			}
		}
	}
}

func (j *mockJob) strided(data []complex128, base, stride, n int, inverse bool) {
	seq := make([]complex128, n)
	for i := range seq {
		seq[i] = data[base+i*stride]
	}
	j.transform(seq, inverse)
	for i, c := range seq {
		data[base+i*stride] = c
	}
}

// transform is an unnormalized DFT in place. The forward kernel is
// exp(-2*pi*i*jk/n); the inverse conjugates around it.
func (j *mockJob) transform(seq []complex128, inverse bool) {
	n := len(seq)
	f, ok := j.ffts[n]
	if !ok {
		f = fourier.NewCmplxFFT(n)
		j.ffts[n] = f
	}
	if inverse {
		for i := range seq {
			seq[i] = cmplx.Conj(seq[i])
		}
	}
	f.Coefficients(seq, seq)
	if inverse {
		for i := range seq {
			seq[i] = cmplx.Conj(seq[i])
		}
	}
}
