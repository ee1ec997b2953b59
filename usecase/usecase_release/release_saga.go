package usecase_release

import (
	"context"
	"errors"

	"github.com/newreleases/admin-console/domain/domain_release/release_models"
	"github.com/newreleases/admin-console/util/util_log"
)

// sagaStep pivot 步骤成功后，之前的步骤不再回滚
type sagaStep struct {
	name       string
	action     func(ctx context.Context) error
	compensate func(ctx context.Context) error
	pivot      bool
}

// releaseSaga 顺序执行步骤，失败时按相反顺序执行补偿
type releaseSaga struct {
	name  string
	steps []sagaStep
}

func newReleaseSaga(name string) *releaseSaga {
	return &releaseSaga{name: name}
}

func (s *releaseSaga) step(step sagaStep) *releaseSaga {
	s.steps = append(s.steps, step)
	return s
}

func (s *releaseSaga) run(ctx context.Context) error {
	done := make([]sagaStep, 0, len(s.steps))
	for _, step := range s.steps {
		if err := step.action(ctx); err != nil {
			// 已有行写入成功时，补偿会破坏这些行引用的数据
			var partial *release_models.PartialWriteError
			if errors.As(err, &partial) && partial.Inconsistent() {
				util_log.Warn().Str("saga", s.name).Str("step", step.name).Msg("partial write, compensation skipped")
				return err
			}
			s.compensate(ctx, done)
			return err
		}
		if step.pivot {
			done = done[:0]
			continue
		}
		done = append(done, step)
	}
	return nil
}

// compensate 尽力而为，失败只记录日志
func (s *releaseSaga) compensate(ctx context.Context, done []sagaStep) {
	ctx = context.WithoutCancel(ctx)
	for i := len(done) - 1; i >= 0; i-- {
		step := done[i]
		if step.compensate == nil {
			continue
		}
		if err := step.compensate(ctx); err != nil {
			util_log.Warn().Err(err).Str("saga", s.name).Str("step", step.name).Msg("compensation failed")
		}
	}
}
