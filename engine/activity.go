package engine;

// One structured event per successful operation.
// The event stream is a collaborator, a broken logger must never fail the
// operation that produced the event.

import (
   "time"

   "github.com/eriq-augustine/golog"
   "github.com/sirupsen/logrus"

   "github.com/eriq-augustine/vault/record"
)

func (this *Engine) logActivity(identity string, action string, file record.Id) {
   defer func() {
      failure := recover();
      if (failure != nil) {
         golog.Warn("Activity logger failed, the operation itself is fine.");
      }
   }();

   this.activity.WithFields(logrus.Fields{
      "timestamp": time.Now().Unix(),
      "identity": identity,
      "action": action,
      "file_id": int(file),
   }).Info("vault activity");
}
