package system

import "testing"

func BenchmarkWorld_Tick(b *testing.B) {
	w := buildArenaWorld(b)
	frame := 0
	b.ResetTimer()
	for b.Loop() {
		if w.Over() {
			b.StopTimer()
			w = buildArenaWorld(b)
			frame = 0
			b.StartTimer()
		}
		w.Tick(scriptedIntent(frame, w), 1)
		frame++
	}
}

func BenchmarkWorld_TickCrowded(b *testing.B) {
	w := buildArenaWorld(b)
	for i := range 40 {
		w.Spawn(createTestPatrol(80+float64(i%12)*70, 208))
	}
	frame := 0
	b.ResetTimer()
	for b.Loop() {
		if w.Over() {
			b.StopTimer()
			w = buildArenaWorld(b)
			frame = 0
			b.StartTimer()
		}
		in := scriptedIntent(frame, w)
		in.Fire = true // projectiles stay in flight
		w.Tick(in, 1)
		frame++
	}
}
