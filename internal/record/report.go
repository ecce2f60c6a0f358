package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const timestampLayout = "2006/01/02 15:04:05 MST"

// Flush rewrites the call-hand and follow reports. Unless force is set, it
// does nothing when the previous write was less than FlushInterval ago.
func (r *Record) Flush(force bool) error {
	r.mu.Lock()
	now := r.opts.Now()
	if !force && !r.lastWrite.IsZero() && now.Sub(r.lastWrite) < r.opts.FlushInterval {
		r.mu.Unlock()
		return nil
	}
	r.lastWrite = now
	r.mu.Unlock()

	if err := writeFile(r.opts.CallHandsPath, r.WriteCallHands); err != nil {
		return fmt.Errorf("write call hands: %w", err)
	}
	if err := writeFile(r.opts.FollowPath, r.WriteFollow); err != nil {
		return fmt.Errorf("write follow: %w", err)
	}
	return nil
}

// writeFile replaces path with the output of fn via a temporary file.
func writeFile(path string, fn func(io.Writer) error) error {
	if path == "" {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := fn(bw); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (r *Record) header(w io.Writer, title string) {
	fmt.Fprintf(w, "peuchre %s\n", title)
	fmt.Fprintf(w, "%s\n", r.opts.Now().Format(timestampLayout))
	fmt.Fprintf(w, "team 1: %s\n", r.opts.Team1)
	fmt.Fprintf(w, "team 2: %s\n", r.opts.Team2)
	fmt.Fprintln(w)
}

// WriteCallHands writes one line per canonical key: the key, its expected
// value and every raw score, keys in sorted order.
func (r *Record) WriteCallHands(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.header(w, "call stats")
	fmt.Fprintln(w, "hand, ep, details")

	keys := make([]string, 0, len(r.chand))
	for k := range r.chand {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		hs := r.chand[k]
		var avg float64
		if hs.Count > 0 {
			avg = float64(hs.Sum) / float64(hs.Count)
		}
		fmt.Fprintf(w, "%s,%f", k, avg)
		for _, s := range hs.Scores {
			fmt.Fprintf(w, ",%d", s)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// WriteFollow writes the average follow ratio of each trick.
func (r *Record) WriteFollow(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.header(w, "follow stats")
	io.WriteString(w, "trick, %follow\n")
	for i, avg := range r.followRatiosLocked() {
		if _, err := fmt.Fprintf(w, "%d,%6.2f\n", i+1, avg); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the human-readable run summary.
func (r *Record) WriteReport(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.opts.Now()
	elapsed := now.Sub(r.start)
	secs := elapsed.Seconds()

	fmt.Fprintf(w, "Peuchre Stats ( %s )   Team 1: %s   Team 2: %s\n\n",
		formatRuntime(elapsed), r.opts.Team1, r.opts.Team2)

	var gps, hps, hpg, avgReps float64
	if secs > 0 {
		gps = float64(r.games) / secs
		hps = float64(r.hands) / secs
	}
	if r.games > 0 {
		hpg = float64(r.hands) / float64(r.games)
	}
	unique := len(r.chand)
	if unique > 0 {
		avgReps = float64(r.callCount) / float64(unique)
	}

	fmt.Fprintln(w, "Games")
	fmt.Fprintf(w, "Total:   %6d\n", r.games)
	fmt.Fprintf(w, "Games/s:    %6.2f\n\n", gps)

	m, e := &r.makers, &r.euchred
	fmt.Fprintln(w, "Hands                  Makes")
	fmt.Fprintf(w, "Total:   %6d        %%by team:   %6.2f / %5.2f\n",
		r.hands, pct(m.Team[0], r.hands), pct(m.Team[1], r.hands))
	fmt.Fprintf(w, "Hands/s:    %6.2f     %%by player: %6.2f /%6.2f /%6.2f /%6.2f\n",
		hps, pct(m.Player[0], r.hands), pct(m.Player[1], r.hands),
		pct(m.Player[2], r.hands), pct(m.Player[3], r.hands))
	fmt.Fprintf(w, "Hands/g:    %6.2f     %%by pos t1: %6.2f / %5.2f / %5.2f / %5.2f\n",
		hpg, pct(m.Position[0][0], m.Team[0]), pct(m.Position[0][1], m.Team[0]),
		pct(m.Position[0][2], m.Team[0]), pct(m.Position[0][3], m.Team[0]))
	fmt.Fprintf(w, "Unique:  %6d                t2: %6.2f / %5.2f / %5.2f / %5.2f\n",
		unique, pct(m.Position[1][0], m.Team[1]), pct(m.Position[1][1], m.Team[1]),
		pct(m.Position[1][2], m.Team[1]), pct(m.Position[1][3], m.Team[1]))
	fmt.Fprintf(w, "%%cover:     %6.2f     Euchres\n", 100*float64(unique)/CanonicalHands)
	fmt.Fprintf(w, "Max Reps: %5d        %%euchred:  %7.2f\n", r.maxReps, pct(r.euchres, r.hands))
	fmt.Fprintf(w, "Avg Reps:   %6.2f     %%by team:  %7.2f / %5.2f\n",
		avgReps, pct(e.Team[0], m.Team[0]), pct(e.Team[1], m.Team[1]))
	fmt.Fprintf(w, "                       %%by player: %6.2f /%6.2f /%6.2f /%6.2f\n",
		pct(e.Player[0], m.Player[0]), pct(e.Player[1], m.Player[1]),
		pct(e.Player[2], m.Player[2]), pct(e.Player[3], m.Player[3]))
	for t, label := range []string{"%by pos t1:", "        t2:"} {
		fmt.Fprintf(w, "                       %s %6.2f /%6.2f /%6.2f /%6.2f\n", label,
			pct(e.Position[t][0], m.Position[t][0]), pct(e.Position[t][1], m.Position[t][1]),
			pct(e.Position[t][2], m.Position[t][2]), pct(e.Position[t][3], m.Position[t][3]))
	}
	for t, label := range []string{"%by hole t1:", "         t2:"} {
		fmt.Fprintf(w, "                       %s", label)
		for i := range holeOrder {
			sep := " /"
			if i == 0 {
				sep = ""
			}
			fmt.Fprintf(w, "%s%6.2f", sep, pct(r.holeEuchres[t][i], r.orderers.Team[t]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	f := r.followRatiosLocked()
	fmt.Fprintln(w, "Follow Ratio (by trick)")
	_, err := fmt.Fprintf(w, "%4.2f / %4.2f / %4.2f / %4.2f / %4.2f\n", f[0], f[1], f[2], f[3], f[4])
	return err
}

func formatRuntime(d time.Duration) string {
	d = d.Round(time.Second)
	days := int(d / (24 * time.Hour))
	d -= time.Duration(days) * 24 * time.Hour
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	return fmt.Sprintf("%dd %02d:%02d:%02d", days, h, m, int(d/time.Second))
}
