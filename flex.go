package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/kc2g-flex-tools/flexclient"
	log "github.com/rs/zerolog/log"
)

// FollowRadio tracks the CW pitch of a FlexRadio station and plays the voice
// at that pitch. It returns when ctx is done or the radio connection ends.
func FollowRadio(ctx context.Context, addr, station string, h *Host) error {
	fc, err := flexclient.NewFlexClient(addr)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		fc.Run()
		close(done)
	}()

	bindClient(fc, station)

	txUpdates := make(chan flexclient.StateUpdate)
	sub := fc.Subscribe(flexclient.Subscription{Prefix: "transmit", Updates: txUpdates})
	defer fc.Unsubscribe(sub)
	fc.SendCmd("sub tx all")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case upd := <-txUpdates:
			if upd.Object != "transmit" || upd.Updated["pitch"] == "" {
				continue
			}
			hz, err := strconv.Atoi(upd.CurrentState["pitch"])
			if err != nil {
				log.Error().Err(err).Send()
				continue
			}
			p := PitchFromHz(float64(hz))
			h.SetPitch(p)
			log.Info().Int("hz", hz).Uint8("note", p.Note()).Uint8("fine", p.Fine()).Msg("radio pitch")
		}
	}
}

func bindClient(fc *flexclient.FlexClient, station string) {
	log.Info().Str("station", station).Msg("Waiting for station")

	clients := make(chan flexclient.StateUpdate)
	sub := fc.Subscribe(flexclient.Subscription{Prefix: "client ", Updates: clients})
	cmdResult := fc.SendNotify("sub client all")

	var clientID, clientUUID string
	var found, cmdComplete bool

	for !found || !cmdComplete {
		select {
		case upd := <-clients:
			if upd.CurrentState["station"] == station {
				clientID = strings.TrimPrefix(upd.Object, "client ")
				clientUUID = upd.CurrentState["client_id"]
				found = true
			}
		case <-cmdResult.C:
			cmdComplete = true
		}
	}
	cmdResult.Close()

	fc.Unsubscribe(sub)

	log.Info().Str("client_id", clientID).Str("uuid", clientUUID).Msg("Found client")

	fc.SendAndWait("client bind client_id=" + clientUUID)
}
