package simulator

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/kube-rca/alert-llm/internal/config"
	"github.com/kube-rca/alert-llm/internal/model"
)

// activeProbability - 발생(active) 알림 비율, 나머지는 resolved
const activeProbability = 0.8

// Poster - 웹훅 전송
type Poster interface {
	Send(ctx context.Context, env model.AlertmanagerWebhook) Outcome
}

// Runner - N개의 sender를 독립적으로 실행
type Runner struct {
	poster   Poster
	sendLog  *SendLog
	senders  int
	interval time.Duration
	jitter   time.Duration
	now      func() time.Time
}

func NewRunner(cfg config.SimulatorConfig, poster Poster, sendLog *SendLog) *Runner {
	senders := cfg.Senders
	if senders < 1 {
		senders = 1
	}
	return &Runner{
		poster:   poster,
		sendLog:  sendLog,
		senders:  senders,
		interval: cfg.Interval(),
		jitter:   cfg.Jitter(),
		now:      time.Now,
	}
}

// Run - ctx가 취소될 때까지 전송, 모든 sender가 멈춘 뒤 반환
func (r *Runner) Run(ctx context.Context) {
	log.WithFields(log.Fields{
		"senders":  r.senders,
		"interval": r.interval.String(),
		"jitter":   r.jitter.String(),
	}).Info("Runner - starting senders")

	var wg sync.WaitGroup
	for i := 0; i < r.senders; i++ {
		wg.Add(1)
		rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		go func(id int) {
			defer wg.Done()
			r.loop(ctx, id, rng)
		}(i)
	}
	wg.Wait()

	log.WithFields(log.Fields{"sent": r.sendLog.Len()}).Info("Runner - all senders stopped")
}

func (r *Runner) loop(ctx context.Context, id int, rng *rand.Rand) {
	for {
		if ctx.Err() != nil {
			return
		}
		r.tick(ctx, rng)

		timer := time.NewTimer(nextDelay(r.interval, r.jitter, rng))
		select {
		case <-ctx.Done():
			timer.Stop()
			log.WithFields(log.Fields{"sender": id}).Debug("Runner - sender stopped")
			return
		case <-timer.C:
		}
	}
}

func (r *Runner) tick(ctx context.Context, rng *rand.Rand) {
	tmpl := Templates[rng.IntN(len(Templates))]
	status := model.StatusResolved
	if rng.Float64() < activeProbability {
		status = model.StatusActive
	}

	env := Generate(tmpl, status, r.now(), rng)
	r.poster.Send(ctx, env)
	r.sendLog.Append(env)
}

// interval ± jitter, 음수면 0
func nextDelay(interval, jitter time.Duration, rng *rand.Rand) time.Duration {
	d := interval
	if jitter > 0 {
		d += time.Duration(rng.Int64N(int64(2*jitter)+1)) - jitter
	}
	return max(d, 0)
}
