package jobs

func (j *ScheduledActivationJob) Tick() { j.tick() }

func (j *StatusTransitionJob) Tick() { j.tick() }
